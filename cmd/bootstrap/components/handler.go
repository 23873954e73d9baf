package components

import (
	"evcharge-booking/internal/handler"
	"evcharge-booking/internal/handler/api"
	"evcharge-booking/internal/handler/middleware"
	"evcharge-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewStationHandler,
		api.NewSlotHandler,
		api.NewBookingHandler,
		func(s *jwt.Service) *middleware.AuthMiddleware {
			return middleware.NewAuthMiddleware(s)
		},
	),
	fx.Invoke(handler.NewRouter),
)
