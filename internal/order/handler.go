package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dinehall/internal/cart"
	"dinehall/internal/common/httpx"
	"dinehall/internal/domain"
)

type Handler struct {
	svc   *Service
	carts *cart.Service
}

func NewHandler(svc *Service, carts *cart.Service) *Handler {
	return &Handler{svc: svc, carts: carts}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/checkout", h.checkout)
	r.GET("/orders/:id", h.get)
	r.GET("/orders", h.list)
	r.GET("/kitchen/queue", h.kitchenQueue)
	r.POST("/orders/:id/status", h.transition)
	r.POST("/orders/:id/payment-status", h.setPaymentStatus)
	r.PUT("/orders/:id/items", h.updateItems)
	r.POST("/orders/:id/recalculate", h.recalculate)
}

type checkoutRequest struct {
	DeliveryType  string `json:"delivery_type"`
	PaymentMethod string `json:"payment_method"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

func (h *Handler) checkout(c *gin.Context) {
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	session := c.GetHeader("X-Session-ID")
	if session == "" {
		httpx.WriteError(c, &domain.ValidationError{Field: "X-Session-ID", Reason: "required"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "cash"
	}

	crt, err := h.carts.Get(c.Request.Context(), session)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}

	var customerID *int64
	if actor.Role == domain.RoleCustomer {
		customerID = &actor.ID
	}
	orderID, err := h.svc.Checkout(c.Request.Context(), crt, customerID,
		domain.DeliveryType(req.DeliveryType), req.PaymentMethod, req.Address, req.Notes)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": orderID, "status": domain.OrderPending})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	o, err := h.svc.GetForCustomer(c.Request.Context(), id, actor)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.WriteError(c, &domain.ValidationError{Field: "customer_id", Reason: "must be an integer"})
			return
		}
		orders, err := h.svc.ListByCustomer(ctx, customerID)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	status := domain.OrderStatus(c.Query("status"))
	orders, err := h.svc.ListByStatus(ctx, status)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) kitchenQueue(c *gin.Context) {
	orders, err := h.svc.KitchenQueue(c.Request.Context())
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) transition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	o, err := h.svc.Transition(c.Request.Context(), id, actor, domain.OrderStatus(req.Status))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

func (h *Handler) setPaymentStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if err := h.svc.SetPaymentStatus(c.Request.Context(), id, actor, domain.PaymentStatus(req.PaymentStatus)); err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "payment_status": req.PaymentStatus})
}

type updateItemsRequest struct {
	Updates   []ItemUpdate   `json:"updates"`
	Additions []ItemAddition `json:"additions"`
}

func (h *Handler) updateItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req updateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	o, err := h.svc.UpdateItems(c.Request.Context(), id, actor, req.Updates, req.Additions)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) recalculate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	o, err := h.svc.RecalculateTotal(c.Request.Context(), id, actor)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteError(c, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
