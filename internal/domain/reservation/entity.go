package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDailyRate = errors.New("daily rate must be greater than 0")
)

// Cancellation is the audit metadata populated on transition to cancelled.
type Cancellation struct {
	Fee         Money
	Date        time.Time
	Reason      string
	CancelledBy *uuid.UUID
}

// Reservation is the central aggregate. The daily rate is a snapshot of
// the vehicle's price at creation; the total is derived once and never
// recomputed, so later rate edits cannot rewrite history.
type Reservation struct {
	id           uuid.UUID
	customerID   uuid.UUID
	vehicleID    uuid.UUID
	dates        DateRange
	dailyRate    Money
	totalAmount  Money
	status       Status
	cancellation *Cancellation
	createdAt    time.Time
	updatedAt    time.Time
}

// NewReservation validates field-level invariants and derives the total.
// Customer-created reservations start pending; staff-created ones start
// confirmed, skipping the payment step.
func NewReservation(
	customerID, vehicleID uuid.UUID,
	dates DateRange,
	dailyRate Money,
	staffCreated bool,
	now time.Time,
) (*Reservation, error) {
	if dailyRate.Cents() <= 0 {
		return nil, ErrInvalidDailyRate
	}
	if dates.BeginsBefore(now) || dates.EndsBefore(now) {
		return nil, ErrDateInPast
	}

	status := StatusPending
	if staffCreated {
		status = StatusConfirmed
	}

	return &Reservation{
		id:          uuid.New(),
		customerID:  customerID,
		vehicleID:   vehicleID,
		dates:       dates,
		dailyRate:   dailyRate,
		totalAmount: TotalAmount(dailyRate, dates),
		status:      status,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructReservation(
	id, customerID, vehicleID uuid.UUID,
	dates DateRange,
	dailyRate, totalAmount Money,
	status Status,
	cancellation *Cancellation,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		customerID:   customerID,
		vehicleID:    vehicleID,
		dates:        dates,
		dailyRate:    dailyRate,
		totalAmount:  totalAmount,
		status:       status,
		cancellation: cancellation,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) CustomerID() uuid.UUID       { return r.customerID }
func (r *Reservation) VehicleID() uuid.UUID        { return r.vehicleID }
func (r *Reservation) Dates() DateRange            { return r.dates }
func (r *Reservation) DailyRate() Money            { return r.dailyRate }
func (r *Reservation) TotalAmount() Money          { return r.totalAmount }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) Cancellation() *Cancellation { return r.cancellation }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }

func (r *Reservation) DurationDays() int {
	return r.dates.Days()
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.customerID == userID
}

// CanBeCancelled reports whether the customer-facing cancellation path
// (with fee computation) applies.
func (r *Reservation) CanBeCancelled() bool {
	return r.status == StatusPending || r.status == StatusConfirmed
}
