package components

import (
	"car-rental-api/internal/infra/readstore"
	"car-rental-api/internal/infra/repository"
	"car-rental-api/internal/usecase/commands"
	"car-rental-api/internal/usecase/queries"
	"car-rental-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	repositoryModule,
	readstoreModule,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			shared.NewPgxTxRunner,
			fx.As(new(shared.TxRunner)),
		),
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repository.NewVehicleRepository,
			fx.As(new(commands.VehicleRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
	),
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(commands.SweepCandidateSource)),
		),
		fx.Annotate(
			readstore.NewVehicleReadStore,
			fx.As(new(queries.VehicleReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)
