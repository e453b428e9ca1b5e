package reservation

import (
	"errors"
	"time"

	"car-rental-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotYetStarted     = errors.New("reservation start date has not been reached")
	ErrVehicleOccupied   = errors.New("another reservation is already active for this vehicle")
)

// The methods below are the single authoritative transition engine: the
// interactive API, the admin surface and the sweeper all go through them.
// Callers are responsible for re-deriving the vehicle's rented flag in
// the same transaction as the status write.

func (r *Reservation) transitionTo(to Status, now time.Time) error {
	if !CanTransition(r.status, to) {
		return errs.Mark(
			errs.Newf("cannot transition reservation from %s to %s", r.status, to),
			ErrInvalidTransition,
		)
	}
	r.status = to
	r.updatedAt = now
	return nil
}

// Activate moves pending/confirmed to active. The rental must have
// started by now, at day granularity in the rental timezone, and no
// other reservation may hold the vehicle active; the caller re-checks
// that fact inside the transaction that persists the change.
func (r *Reservation) Activate(now time.Time, loc *time.Location, vehicleHasOtherActive bool) error {
	if !CanTransition(r.status, StatusActive) {
		return errs.Mark(
			errs.Newf("cannot activate reservation in status %s", r.status),
			ErrInvalidTransition,
		)
	}
	if !r.dates.StartedBy(now, loc) {
		return ErrNotYetStarted
	}
	if vehicleHasOtherActive {
		return ErrVehicleOccupied
	}
	return r.transitionTo(StatusActive, now)
}

// Complete moves active to completed.
func (r *Reservation) Complete(now time.Time) error {
	return r.transitionTo(StatusCompleted, now)
}

// Cancel moves pending/confirmed to cancelled and records the audit
// metadata. The fee must be computed with the same now that is persisted
// as the cancellation date.
func (r *Reservation) Cancel(fee Money, now time.Time, cancelledBy *uuid.UUID, reason string) error {
	if !r.CanBeCancelled() {
		return errs.Mark(
			errs.Newf("cannot cancel reservation in status %s", r.status),
			ErrInvalidTransition,
		)
	}
	if err := r.transitionTo(StatusCancelled, now); err != nil {
		return err
	}
	r.cancellation = &Cancellation{
		Fee:         fee,
		Date:        now,
		Reason:      reason,
		CancelledBy: cancelledBy,
	}
	return nil
}
