package commands

import (
	"context"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/vehicle"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/pkg/errs"
	"car-rental-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterVehicleInput struct {
	Brand          string
	Model          string
	Year           int
	Color          string
	DailyRateCents int64
}

type VehicleCommands interface {
	Register(ctx context.Context, actor shared.Actor, input RegisterVehicleInput) (uuid.UUID, error)
}

type vehicleCommandsImpl struct {
	tx       shared.TxRunner
	vehicles VehicleRepository
}

func NewVehicleCommands(tx shared.TxRunner, vehicles VehicleRepository) VehicleCommands {
	return &vehicleCommandsImpl{tx: tx, vehicles: vehicles}
}

// Register adds a vehicle to the fleet. Staff only.
func (c *vehicleCommandsImpl) Register(ctx context.Context, actor shared.Actor, input RegisterVehicleInput) (uuid.UUID, error) {
	if !actor.IsPrivileged() {
		return uuid.Nil, errs.Mark(errs.New("only staff can register vehicles"), ErrNotPermitted)
	}

	rate, err := reservation.NewMoneyFromCents(input.DailyRateCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}
	veh, err := vehicle.NewVehicle(input.Brand, input.Model, input.Year, input.Color, rate)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	var id uuid.UUID
	err = c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		id, err = c.vehicles.Create(ctx, tx, veh)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
