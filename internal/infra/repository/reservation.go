package repository

import (
	"context"
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository is the write-side store for the reservation
// aggregate. Every method takes the caller's transaction handle; the
// conflict and mutual-exclusion queries are only meaningful inside the
// same transaction that locks the vehicle row.
type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const reservationColumns = `id, customer_id, vehicle_id, start_date, end_date,
	daily_rate_cents, total_amount_cents, status,
	cancellation_fee_cents, cancellation_date, cancellation_reason, cancelled_by,
	created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, tx infra.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO reservations (
			id, customer_id, vehicle_id, start_date, end_date,
			daily_rate_cents, total_amount_cents, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id`,
		res.ID(), res.CustomerID(), res.VehicleID(),
		res.Dates().Start(), res.Dates().End(),
		res.DailyRate().Cents(), res.TotalAmount().Cents(),
		res.Status().String(), res.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row := tx.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	return scanReservation(row)
}

// FindByIDForUpdate locks the reservation row for the rest of the
// transaction, serializing concurrent lifecycle transitions.
func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row := tx.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)
	return scanReservation(row)
}

// FindOverlapping returns the date range of the first reservation that
// blocks the given range on the vehicle, or nil when the slot is free.
// Boundaries are inclusive: a rental ending on day X blocks one starting
// on day X. excludeID lets updates skip self-conflict.
func (r *ReservationRepository) FindOverlapping(
	ctx context.Context,
	tx infra.DBTX,
	vehicleID uuid.UUID,
	dates reservation.DateRange,
	excludeID uuid.UUID,
) (*reservation.DateRange, error) {
	var start, end time.Time
	err := tx.QueryRow(ctx, `
		SELECT start_date, end_date
		FROM reservations
		WHERE vehicle_id = $1
		  AND id <> $2
		  AND status IN ('pending', 'confirmed', 'active')
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date
		LIMIT 1`,
		vehicleID, excludeID, dates.Start(), dates.End(),
	).Scan(&start, &end)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to check reservation conflicts", err)
	}

	blocking, err := reservation.NewDateRange(start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid dates", err)
	}
	return &blocking, nil
}

// HasOtherActive reports whether a different reservation currently holds
// the vehicle in active status.
func (r *ReservationRepository) HasOtherActive(ctx context.Context, tx infra.DBTX, vehicleID, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE vehicle_id = $1 AND id <> $2 AND status = 'active'
		)`,
		vehicleID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check active reservations", err)
	}
	return exists, nil
}

// UpdateLifecycle persists a status transition together with its
// cancellation metadata, if any.
func (r *ReservationRepository) UpdateLifecycle(ctx context.Context, tx infra.DBTX, res *reservation.Reservation) error {
	var (
		feeCents    *int64
		cancelledAt *time.Time
		reason      *string
		cancelledBy *uuid.UUID
	)
	if c := res.Cancellation(); c != nil {
		fee := c.Fee.Cents()
		feeCents = &fee
		at := c.Date
		cancelledAt = &at
		rs := c.Reason
		reason = &rs
		cancelledBy = c.CancelledBy
	}

	tag, err := tx.Exec(ctx, `
		UPDATE reservations
		SET status = $2,
		    cancellation_fee_cents = $3,
		    cancellation_date = $4,
		    cancellation_reason = $5,
		    cancelled_by = $6,
		    updated_at = $7
		WHERE id = $1`,
		res.ID(), res.Status().String(),
		feeCents, cancelledAt, reason, cancelledBy,
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation lifecycle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found for update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tx infra.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found for delete", nil, infra.KindNotFound)
	}
	return nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, customerID, vehicleID uuid.UUID
		startDate, endDate        time.Time
		rateCents, totalCents     int64
		status                    string
		feeCents                  *int64
		cancelledAt               *time.Time
		reason                    *string
		cancelledBy               *uuid.UUID
		createdAt, updatedAt      time.Time
	)

	err := row.Scan(
		&id, &customerID, &vehicleID, &startDate, &endDate,
		&rateCents, &totalCents, &status,
		&feeCents, &cancelledAt, &reason, &cancelledBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan reservation", err)
	}

	dates, err := reservation.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid dates", err)
	}

	var cancellation *reservation.Cancellation
	if cancelledAt != nil {
		cancellation = &reservation.Cancellation{
			Fee:         reservation.NewMoney(derefInt64(feeCents)),
			Date:        *cancelledAt,
			Reason:      derefString(reason),
			CancelledBy: cancelledBy,
		}
	}

	return reservation.ReconstructReservation(
		id, customerID, vehicleID,
		dates,
		reservation.NewMoney(rateCents), reservation.NewMoney(totalCents),
		reservation.Status(status),
		cancellation,
		createdAt, updatedAt,
	), nil
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
