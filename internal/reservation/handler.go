package reservation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dinehall/internal/common/httpx"
	"dinehall/internal/domain"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/reservations", h.create)
	r.GET("/reservations/:id", h.get)
	r.GET("/reservations", h.list)
	r.POST("/reservations/:id/status", h.transition)
}

type createRequest struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	PartySize      int    `json:"party_size"`
	SpecialRequest string `json:"special_request"`
}

func (h *Handler) create(c *gin.Context) {
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	r, err := h.svc.Create(c.Request.Context(), actor.ID, req.Date, req.Time, req.PartySize, req.SpecialRequest)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteError(c, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"})
		return
	}
	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if date := c.Query("date"); date != "" {
		out, err := h.svc.ListByDate(ctx, date)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}
	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.WriteError(c, &domain.ValidationError{Field: "customer_id", Reason: "must be an integer"})
			return
		}
		out, err := h.svc.ListByCustomer(ctx, customerID)
		if err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}
	out, err := h.svc.ListByStatus(ctx, domain.ReservationStatus(c.Query("status")))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) transition(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteError(c, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"})
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
	r, err := h.svc.Transition(c.Request.Context(), id, actor, domain.ReservationStatus(req.Status))
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
