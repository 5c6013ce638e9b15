package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safatanc/jewelry-backoffice/internal/app/services"
	"github.com/sirupsen/logrus"
)

// RequestID tags every request so audit entries and logs can be correlated
func RequestID(c *fiber.Ctx) error {
	requestID := c.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Set("X-Request-ID", requestID)
	c.Locals("request_id", requestID)
	c.SetUserContext(services.WithRequestID(c.UserContext(), requestID))

	err := c.Next()

	logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     c.Response().StatusCode(),
	}).Info("request handled")

	return err
}
