package commands

import (
	"context"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/domain/vehicle"
	"car-rental-api/internal/infra"

	"github.com/google/uuid"
)

// Consumer-side repository contracts. The infra implementations satisfy
// these; tests substitute mocks.

type ReservationRepository interface {
	Create(ctx context.Context, tx infra.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	FindByIDForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	FindOverlapping(ctx context.Context, tx infra.DBTX, vehicleID uuid.UUID, dates reservation.DateRange, excludeID uuid.UUID) (*reservation.DateRange, error)
	HasOtherActive(ctx context.Context, tx infra.DBTX, vehicleID, excludeID uuid.UUID) (bool, error)
	UpdateLifecycle(ctx context.Context, tx infra.DBTX, res *reservation.Reservation) error
	Delete(ctx context.Context, tx infra.DBTX, id uuid.UUID) error
}

type VehicleRepository interface {
	Create(ctx context.Context, tx infra.DBTX, v *vehicle.Vehicle) (uuid.UUID, error)
	FindByID(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*vehicle.Vehicle, error)
	FindByIDForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*vehicle.Vehicle, error)
	SyncRentedFlag(ctx context.Context, tx infra.DBTX, vehicleID uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, tx infra.DBTX, u *user.User) (uuid.UUID, error)
	CreateProfile(ctx context.Context, tx infra.DBTX, p *user.Profile) error
	FindByID(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*user.User, error)
	FindProfile(ctx context.Context, tx infra.DBTX, userID uuid.UUID) (*user.Profile, error)
}
