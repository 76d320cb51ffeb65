package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dinehall/internal/domain"
)

// ActorFrom reads the acting role and identity from request headers. Auth
// itself lives in front of this service; handlers only need an explicit
// actor to hand to the lifecycle engines.
func ActorFrom(c *gin.Context) (domain.Actor, error) {
	role := domain.Role(c.GetHeader("X-Actor-Role"))
	if !role.Valid() {
		return domain.Actor{}, &domain.ValidationError{Field: "X-Actor-Role", Reason: "missing or unknown role"}
	}
	var id int64
	if raw := c.GetHeader("X-Actor-ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Actor{}, &domain.ValidationError{Field: "X-Actor-ID", Reason: "must be an integer"}
		}
		id = parsed
	}
	if role == domain.RoleCustomer && id == 0 {
		return domain.Actor{}, &domain.ValidationError{Field: "X-Actor-ID", Reason: "required for customer actions"}
	}
	return domain.Actor{Role: role, ID: id}, nil
}
