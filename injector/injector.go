//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/safatanc/jewelry-backoffice/internal/app/deliveries"
	"github.com/safatanc/jewelry-backoffice/internal/app/middlewares"
	"github.com/safatanc/jewelry-backoffice/internal/app/services"
	"github.com/safatanc/jewelry-backoffice/internal/infrastructures"
	"github.com/safatanc/jewelry-backoffice/pkg/ratelimit"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewKeyPrefix,
	infrastructures.NewValidator,
	infrastructures.NewCouponStoreConfig,
	infrastructures.NewCouponStoreClient,
	infrastructures.NewRateLimiter,
	wire.Bind(new(ratelimit.RateLimiter), new(*ratelimit.RedisRateLimiter)),
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewCouponStoreService,
	wire.Bind(new(services.CouponStore), new(*services.CouponStoreService)),
	services.NewRedisCouponCache,
	wire.Bind(new(services.CouponCache), new(*services.RedisCouponCache)),
	services.NewAuditService,
	wire.Bind(new(services.AuditLogger), new(*services.AuditService)),
	services.NewCouponFormService,
	services.NewCouponPresenter,
	services.NewCouponPageService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewCouponHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
