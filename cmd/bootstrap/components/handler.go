package components

import (
	"car-rental-api/internal/handler"
	"car-rental-api/internal/handler/api"
	"car-rental-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewVehicleHandler,
		api.NewReservationHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
