package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/pkg"
	"github.com/safatanc/jewelry-backoffice/internal/app/services"
)

type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// AuthBearer requires a bearer token and forwards it to the coupon store.
// The token is not verified here; the store is the authority.
func (m *AuthMiddleware) AuthBearer(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}

	c.Locals("token", token)
	c.SetUserContext(services.WithBearerToken(c.UserContext(), token))

	return c.Next()
}
