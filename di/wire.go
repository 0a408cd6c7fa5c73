//go:build wireinject
// +build wireinject

package di

import (
	"clinicbook/config"
	"clinicbook/infras/otel"
	"clinicbook/infras/redis"
	"clinicbook/infras/smtp"
	availabilityHandler "clinicbook/internal/handlers/availability"
	bookingHandler "clinicbook/internal/handlers/booking"
	"clinicbook/shared/cache"
	"clinicbook/transport/http"
	"clinicbook/transport/http/middleware"
	"clinicbook/transport/http/router"

	availabilityService "clinicbook/internal/domains/availability/service"
	bookingRepository "clinicbook/internal/domains/booking/repository"
	bookingService "clinicbook/internal/domains/booking/service"
	"clinicbook/internal/domains/notification"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	smtp.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var notificationDomain = wire.NewSet(
	notification.New,
)

var domains = wire.NewSet(
	bookingDomain,
	availabilityDomain,
	notificationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
