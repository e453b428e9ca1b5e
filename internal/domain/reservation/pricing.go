package reservation

import (
	"errors"
	"time"
)

var ErrNotCancellable = errors.New("only pending or confirmed reservations can be cancelled")

// Fee ladder thresholds, measured from 00:00 of the start date in the
// configured rental timezone.
const (
	freeCancellationHours = 48
	halfFeeHours          = 24
)

// PolicyBand describes one tier of the cancellation fee ladder for
// display purposes. MinHours is the inclusive lower bound in hours
// before the rental start; FeePercent applies to the total amount.
type PolicyBand struct {
	MinHours   int
	FeePercent int
}

// CancellationPolicy returns the fee ladder, most lenient band first.
func CancellationPolicy() []PolicyBand {
	return []PolicyBand{
		{MinHours: freeCancellationHours, FeePercent: 0},
		{MinHours: halfFeeHours, FeePercent: 50},
		{MinHours: 0, FeePercent: 100},
	}
}

// TotalAmount derives the persisted total: daily rate times whole days.
func TotalAmount(dailyRate Money, dates DateRange) Money {
	return dailyRate.MulDays(dates.Days())
}

// CancellationFee computes the fee owed if the reservation were cancelled
// at the given instant:
//
//	48h or more before start: no fee
//	24-48h before start:      half the total
//	under 24h (or started):   the full total
//
// Undefined outside pending/confirmed; the caller must use the same now
// for the persisted cancellation timestamp.
func CancellationFee(r *Reservation, now time.Time, loc *time.Location) (Money, error) {
	if !r.CanBeCancelled() {
		return Money{}, ErrNotCancellable
	}

	start := r.dates.Start()
	startOfDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	hoursToStart := startOfDay.Sub(now).Hours()

	switch {
	case hoursToStart >= freeCancellationHours:
		return NewMoney(0), nil
	case hoursToStart >= halfFeeHours:
		return r.totalAmount.Half(), nil
	default:
		return r.totalAmount, nil
	}
}
