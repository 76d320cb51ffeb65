package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dinehall/internal/common/httpx"
	"dinehall/internal/domain"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler { return &Handler{store: store} }

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/menu", h.listAvailable)
	r.GET("/menu/:id", h.get)

	admin := r.Group("/admin/menu", requireStaff)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.PATCH("/:id/availability", h.setAvailability)
	admin.DELETE("/:id", h.delete)
}

func requireStaff(c *gin.Context) {
	actor, err := httpx.ActorFrom(c)
	if err != nil {
		httpx.WriteError(c, err)
		c.Abort()
		return
	}
	if !actor.Role.Staff() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff role required"})
		return
	}
	c.Next()
}

func (h *Handler) listAvailable(c *gin.Context) {
	items, err := h.store.ListAvailable(c.Request.Context())
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.store.GetItem(c.Request.Context(), id)
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type itemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"is_available"`
}

func (r itemRequest) validate() error {
	if r.Name == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if r.Price < 0 {
		return &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

func (h *Handler) create(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if err := req.validate(); err != nil {
		httpx.WriteError(c, err)
		return
	}
	id, err := h.store.Create(c.Request.Context(), domain.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if err := req.validate(); err != nil {
		httpx.WriteError(c, err)
		return
	}
	err := h.store.Update(c.Request.Context(), domain.MenuItem{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type availabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

func (h *Handler) setAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if err := h.store.SetAvailability(c.Request.Context(), id, req.IsAvailable); err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_available": req.IsAvailable})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		httpx.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteError(c, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
