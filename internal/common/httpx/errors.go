package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dinehall/internal/domain"
)

// WriteError maps the domain error taxonomy onto HTTP status codes and
// writes a JSON error body.
func WriteError(c *gin.Context, err error) {
	var (
		ve  *domain.ValidationError
		ce  *domain.ConflictError
		fe  *domain.ForbiddenTransitionError
		iue *domain.ItemUnavailableError
		cfe *domain.CheckoutFailedError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": ce.Error()})
	case errors.As(err, &fe):
		c.JSON(http.StatusForbidden, gin.H{"error": fe.Error()})
	case errors.As(err, &iue):
		c.JSON(http.StatusConflict, gin.H{"error": iue.Error()})
	case errors.As(err, &cfe):
		c.JSON(http.StatusInternalServerError, gin.H{"error": cfe.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
