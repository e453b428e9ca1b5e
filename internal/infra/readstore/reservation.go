package readstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/vehicle"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationReadStore serves reservation views joined with their vehicle
// and customer, plus the candidate lists the scheduled sweep consumes.
type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

const reservationViewQuery = `
	SELECT
		r.id, r.customer_id, u.email,
		v.id, v.brand, v.model, v.year, v.color, v.daily_rate_cents,
		v.in_fleet, v.is_rented, v.is_damaged, v.is_maintenance, v.created_at, v.updated_at,
		r.start_date, r.end_date, r.daily_rate_cents, r.total_amount_cents, r.status,
		r.cancellation_fee_cents, r.cancellation_date, r.cancellation_reason, r.cancelled_by,
		r.created_at, r.updated_at
	FROM reservations r
	JOIN vehicles v ON v.id = r.vehicle_id
	JOIN users u ON u.id = r.customer_id`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.pool.QueryRow(ctx, reservationViewQuery+` WHERE r.id = $1`, id)
	view, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to fetch reservation view", err)
	}
	return view, nil
}

const reservationListQuery = `
	SELECT
		r.id, r.vehicle_id, v.brand, v.model, v.year,
		r.start_date, r.end_date, r.total_amount_cents, r.status, r.created_at
	FROM reservations r
	JOIN vehicles v ON v.id = r.vehicle_id`

func (s *ReservationReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]queries.ReservationListItem, error) {
	rows, err := s.pool.Query(ctx,
		reservationListQuery+` WHERE r.customer_id = $1 ORDER BY r.start_date DESC, r.created_at DESC`,
		customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()
	return collectListItems(rows)
}

func (s *ReservationReadStore) ListAll(ctx context.Context) ([]queries.ReservationListItem, error) {
	rows, err := s.pool.Query(ctx,
		reservationListQuery+` ORDER BY r.start_date DESC, r.created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()
	return collectListItems(rows)
}

// Sweep candidate lists. Dates are compared against the caller's notion
// of "today" so a single clock reading drives the whole sweep run.

func (s *ReservationReadStore) ConfirmedStarting(ctx context.Context, day time.Time) ([]uuid.UUID, error) {
	return s.candidateIDs(ctx,
		`SELECT id FROM reservations WHERE status = 'confirmed' AND start_date = $1 ORDER BY created_at`, day)
}

func (s *ReservationReadStore) ActiveEnding(ctx context.Context, day time.Time) ([]uuid.UUID, error) {
	return s.candidateIDs(ctx,
		`SELECT id FROM reservations WHERE status = 'active' AND end_date <= $1 ORDER BY created_at`, day)
}

func (s *ReservationReadStore) PendingOverdue(ctx context.Context, day time.Time) ([]uuid.UUID, error) {
	return s.candidateIDs(ctx,
		`SELECT id FROM reservations WHERE status IN ('pending', 'confirmed') AND end_date < $1 ORDER BY created_at`, day)
}

func (s *ReservationReadStore) candidateIDs(ctx context.Context, query string, day time.Time) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, query, day)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sweep candidates", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan candidate id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate candidates", err)
	}
	return ids, nil
}

func collectListItems(rows pgx.Rows) ([]queries.ReservationListItem, error) {
	items := make([]queries.ReservationListItem, 0)
	for rows.Next() {
		var (
			item         queries.ReservationListItem
			brand, model string
			year         int
		)
		err := rows.Scan(
			&item.ID, &item.VehicleID, &brand, &model, &year,
			&item.StartDate, &item.EndDate, &item.TotalAmountCents, &item.Status, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		item.VehicleName = fmt.Sprintf("%s %s (%d)", brand, model, year)
		item.DurationDays = durationDays(item.StartDate, item.EndDate)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return items, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		view                                      queries.ReservationView
		vehID                                     uuid.UUID
		brand, model, color                       string
		year                                      int
		vehRateCents                              int64
		inFleet, isRented, isDamaged, maintenance bool
		vehCreatedAt, vehUpdatedAt                time.Time
	)
	err := row.Scan(
		&view.ID, &view.CustomerID, &view.CustomerEmail,
		&vehID, &brand, &model, &year, &color, &vehRateCents,
		&inFleet, &isRented, &isDamaged, &maintenance, &vehCreatedAt, &vehUpdatedAt,
		&view.StartDate, &view.EndDate, &view.DailyRateCents, &view.TotalAmountCents, &view.Status,
		&view.CancellationFeeCents, &view.CancellationDate, &view.CancellationReason, &view.CancelledBy,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v := vehicle.ReconstructVehicle(
		vehID, brand, model, year, color,
		reservation.NewMoney(vehRateCents),
		inFleet, isRented, isDamaged, maintenance,
		vehCreatedAt, vehUpdatedAt,
	)
	view.Vehicle = queries.VehicleSummary{
		ID:             vehID,
		Brand:          brand,
		Model:          model,
		Year:           year,
		Color:          color,
		DailyRateCents: vehRateCents,
		Availability:   v.Availability(),
	}
	view.DurationDays = durationDays(view.StartDate, view.EndDate)
	return &view, nil
}

func durationDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
