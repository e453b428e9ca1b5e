package bootstrap

import (
	"time"

	"car-rental-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		RentalLocation,
	),
)

// RentalLocation is the timezone the fee ladder and the sweep use to
// decide what "today" means.
func RentalLocation(cfg config.Config) *time.Location {
	return cfg.Rental.Location()
}
