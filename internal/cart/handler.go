package cart

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
	r.GET("/cart", h.summary)
	r.POST("/cart/items", h.add)
	r.PATCH("/cart/items/:itemID", h.setQuantity)
	r.DELETE("/cart/items/:itemID", h.remove)
	r.DELETE("/cart", h.clear)
}

func session(c *gin.Context) (string, bool) {
	s := c.GetHeader("X-Session-ID")
	if s == "" {
		httpx.WriteError(c, &domain.ValidationError{Field: "X-Session-ID", Reason: "required"})
		return "", false
	}
	return s, true
}

func (h *Handler) summary(c *gin.Context) {
	sid, ok := session(c)
	if !ok {
		return
	}
	sum, err := h.svc.Summary(c.Request.Context(), sid)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type addRequest struct {
	MenuItemID          int64  `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

func (h *Handler) add(c *gin.Context) {
	sid, ok := session(c)
	if !ok {
		return
	}
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	sum, err := h.svc.Add(c.Request.Context(), sid, req.MenuItemID, req.Quantity, req.SpecialInstructions)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(c *gin.Context) {
	sid, ok := session(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil || itemID < 1 {
		httpx.WriteError(c, &domain.ValidationError{Field: "itemID", Reason: "must be a positive integer"})
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	sum, err := h.svc.SetQuantity(c.Request.Context(), sid, itemID, req.Quantity)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) remove(c *gin.Context) {
	sid, ok := session(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil || itemID < 1 {
		httpx.WriteError(c, &domain.ValidationError{Field: "itemID", Reason: "must be a positive integer"})
		return
	}
	sum, err := h.svc.Remove(c.Request.Context(), sid, itemID)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) clear(c *gin.Context) {
	sid, ok := session(c)
	if !ok {
		return
	}
	if err := h.svc.Clear(c.Request.Context(), sid); err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
