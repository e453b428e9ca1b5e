package repository

import (
	"context"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/vehicle"
	"car-rental-api/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VehicleRepository struct{}

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

const vehicleColumns = `id, brand, model, year, color, daily_rate_cents,
	in_fleet, is_rented, is_damaged, is_maintenance, created_at, updated_at`

func (r *VehicleRepository) Create(ctx context.Context, tx infra.DBTX, v *vehicle.Vehicle) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO vehicles (
			id, brand, model, year, color, daily_rate_cents,
			in_fleet, is_rented, is_damaged, is_maintenance, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING id`,
		v.ID(), v.Brand(), v.Model(), v.Year(), v.Color(), v.DailyRate().Cents(),
		v.InFleet(), v.IsRented(), v.IsDamaged(), v.IsMaintenance(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create vehicle", err)
	}
	return id, nil
}

// FindByIDForUpdate locks the vehicle row for the rest of the
// transaction. Creation and lifecycle transitions take this lock first,
// which serializes conflict checks per vehicle and closes the
// check-then-act race between concurrent bookings.
func (r *VehicleRepository) FindByIDForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*vehicle.Vehicle, error) {
	row := tx.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id)
	return scanVehicle(row)
}

func (r *VehicleRepository) FindByID(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*vehicle.Vehicle, error) {
	row := tx.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row)
}

// SyncRentedFlag re-derives is_rented from the presence of an active
// reservation instead of blindly setting it. The re-derivation makes
// clearing safe even on paths (deletion, completion) where another
// active rental could still hold the vehicle.
func (r *VehicleRepository) SyncRentedFlag(ctx context.Context, tx infra.DBTX, vehicleID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET is_rented = EXISTS (
			SELECT 1 FROM reservations
			WHERE vehicle_id = $1 AND status = 'active'
		),
		updated_at = now()
		WHERE id = $1`,
		vehicleID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to sync vehicle rented flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found for rented flag sync", nil, infra.KindNotFound)
	}
	return nil
}

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var (
		id                                      uuid.UUID
		brand, model, color                     string
		year                                    int
		rateCents                               int64
		inFleet, isRented, isDamaged, isMainten bool
		createdAt, updatedAt                    time.Time
	)

	err := row.Scan(
		&id, &brand, &model, &year, &color, &rateCents,
		&inFleet, &isRented, &isDamaged, &isMainten,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan vehicle", err)
	}

	return vehicle.ReconstructVehicle(
		id, brand, model, year, color,
		reservation.NewMoney(rateCents),
		inFleet, isRented, isDamaged, isMainten,
		createdAt, updatedAt,
	), nil
}
