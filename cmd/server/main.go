package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"dinehall/internal/cart"
	"dinehall/internal/catalog"
	"dinehall/internal/common/config"
	"dinehall/internal/common/db"
	"dinehall/internal/common/httpx"
	"dinehall/internal/common/logger"
	"dinehall/internal/common/middleware"
	"dinehall/internal/common/mq"
	"dinehall/internal/events"
	"dinehall/internal/order"
	"dinehall/internal/reservation"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: auto-discover)")
	port := flag.Int("port", 0, "http port (overrides config)")
	flag.Parse()

	lg := logger.New("dinehall")

	path := *configPath
	if path == "" {
		found, err := config.FindConfig()
		if err != nil {
			lg.Error("config_not_found", err, nil)
			os.Exit(2)
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(2)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, err := db.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		lg.Error("db_connect_failed", err, nil)
		os.Exit(1)
	}
	defer conn.Close()
	if err := conn.Migrate(ctx); err != nil {
		lg.Error("db_migrate_failed", err, nil)
		os.Exit(1)
	}

	mqClient, err := mq.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Pass)
	if err != nil {
		lg.Error("mq_connect_failed", err, nil)
		os.Exit(1)
	}
	defer mqClient.Close()
	if err := mqClient.DeclareAll(); err != nil {
		lg.Error("mq_declare_failed", err, nil)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Pass,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		lg.Error("redis_connect_failed", err, nil)
		os.Exit(1)
	}
	defer redisClient.Close()

	catalogStore := catalog.NewPGStore(conn)
	cartStore := cart.NewRedisStore(redisClient)
	publisher := events.NewAMQPPublisher(mqClient)

	cartSvc := cart.NewService(cartStore, catalogStore)
	orderSvc := order.NewService(order.NewPGRepository(conn), catalogStore, cartStore, publisher, lg, cfg.Order)
	reservationSvc := reservation.NewService(reservation.NewPGRepository(conn), publisher, lg)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(lg), middleware.Recovery(lg), middleware.CORS())
	if cfg.HTTP.RateLimit > 0 {
		router.Use(middleware.RateLimit(cfg.HTTP.RateLimit))
	}
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	catalog.NewHandler(catalogStore).Register(router)
	cart.NewHandler(cartSvc).Register(router)
	order.NewHandler(orderSvc, cartSvc).Register(router)
	reservation.NewHandler(reservationSvc).Register(router)

	lg.Info("service_started", map[string]any{"port": cfg.HTTP.Port})
	srv := httpx.New(":"+strconv.Itoa(cfg.HTTP.Port), router)
	if err := srv.Run(ctx); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
	lg.Info("graceful_shutdown", nil)
}
