package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/jewelry-backoffice/internal/app/deliveries"
	"github.com/safatanc/jewelry-backoffice/internal/app/middlewares"
	"github.com/safatanc/jewelry-backoffice/pkg/ratelimit"
)

// Application represents the main application container for the back-office
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	CouponHandler       *deliveries.CouponHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	router.Use(middlewares.RequestID)

	app.HealthHandler.RegisterRoutes(router)

	api := router.Group("/api/v1", app.RateLimitMiddleware.LimitByIP(ratelimit.AdminReadLimit))
	app.CouponHandler.RegisterRoutes(api)
}
