package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type DB struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"database"`
}

func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", d.User, d.Pass, d.Host, d.Port, d.Name)
}

type MQ struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
}

type Redis struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Pass string `yaml:"password"`
	DB   int    `yaml:"db"`
}

func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type HTTP struct {
	Port      int `yaml:"port"`
	RateLimit int `yaml:"rate_limit"` // requests per second, 0 disables
}

// Order holds the checkout pricing knobs: tax rate and the flat fee
// applied to delivery orders.
type Order struct {
	TaxRatePercent float64 `yaml:"tax_rate_percent"`
	DeliveryFee    float64 `yaml:"delivery_fee"`
}

type App struct {
	Database DB    `yaml:"database"`
	Rabbit   MQ    `yaml:"rabbitmq"`
	Redis    Redis `yaml:"redis"`
	HTTP     HTTP  `yaml:"http"`
	Order    Order `yaml:"order"`
}

func Load(path string) (App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return App{}, err
	}
	var a App
	if err := yaml.Unmarshal(b, &a); err != nil {
		return App{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if a.Database.Host == "" || a.Rabbit.Host == "" {
		return App{}, errors.New("invalid config: missing database/rabbitmq host")
	}
	if a.HTTP.Port == 0 {
		a.HTTP.Port = 3000
	}
	if a.Order.TaxRatePercent == 0 {
		a.Order.TaxRatePercent = 8
	}
	if a.Order.DeliveryFee == 0 {
		a.Order.DeliveryFee = 5.00
	}
	return a, nil
}

func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
