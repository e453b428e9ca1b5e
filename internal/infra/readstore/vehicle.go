package readstore

import (
	"context"
	"errors"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/vehicle"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VehicleReadStore serves the vehicle read models straight off the pool.
// Reads are not transactional; availability is derived at scan time by
// rebuilding the domain entity, so the rules live in one place.
type VehicleReadStore struct {
	pool *pgxpool.Pool
}

func NewVehicleReadStore(pool *pgxpool.Pool) *VehicleReadStore {
	return &VehicleReadStore{pool: pool}
}

const vehicleViewColumns = `id, brand, model, year, color, daily_rate_cents,
	in_fleet, is_rented, is_damaged, is_maintenance, created_at, updated_at`

func (s *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+vehicleViewColumns+` FROM vehicles WHERE id = $1`, id)
	view, err := scanVehicleView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to fetch vehicle view", err)
	}
	return view, nil
}

func (s *VehicleReadStore) ListInFleet(ctx context.Context) ([]queries.VehicleView, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+vehicleViewColumns+` FROM vehicles WHERE in_fleet = TRUE ORDER BY brand, model, year`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles", err)
	}
	defer rows.Close()

	views := make([]queries.VehicleView, 0)
	for rows.Next() {
		view, err := scanVehicleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle view", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicles", err)
	}
	return views, nil
}

func scanVehicleView(row pgx.Row) (*queries.VehicleView, error) {
	var (
		id                                        uuid.UUID
		brand, model, color                       string
		year                                      int
		rateCents                                 int64
		inFleet, isRented, isDamaged, maintenance bool
		createdAt, updatedAt                      time.Time
	)
	err := row.Scan(
		&id, &brand, &model, &year, &color, &rateCents,
		&inFleet, &isRented, &isDamaged, &maintenance,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	v := vehicle.ReconstructVehicle(
		id, brand, model, year, color,
		reservation.NewMoney(rateCents),
		inFleet, isRented, isDamaged, maintenance,
		createdAt, updatedAt,
	)
	return &queries.VehicleView{
		ID:             id,
		Brand:          brand,
		Model:          model,
		Year:           year,
		Color:          color,
		DailyRateCents: rateCents,
		InFleet:        inFleet,
		IsRented:       isRented,
		IsDamaged:      isDamaged,
		IsMaintenance:  maintenance,
		Availability:   v.Availability(),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}
