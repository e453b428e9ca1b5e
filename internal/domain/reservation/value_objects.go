package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrDateInPast       = errors.New("reservation dates cannot be in the past")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
)

// DateRange is an inclusive calendar date range. Both endpoints are
// normalized to midnight UTC; the range always spans at least one day.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s := truncateToDate(start)
	e := truncateToDate(end)
	if !s.Before(e) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: s, end: e}, nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

// Days is the rental duration in whole days; at least 1 by construction.
func (r DateRange) Days() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

// Overlaps uses inclusive boundaries on both ends: a reservation ending
// on day X conflicts with one starting on day X.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !r.end.Before(other.start)
}

// BeginsBefore reports whether the range starts before the given day.
func (r DateRange) BeginsBefore(day time.Time) bool {
	return r.start.Before(truncateToDate(day))
}

// EndsBefore reports whether the range ends strictly before the given day.
func (r DateRange) EndsBefore(day time.Time) bool {
	return r.end.Before(truncateToDate(day))
}

// StartedBy reports whether the rental period has begun as of now,
// where "today" is the calendar date in the given timezone. Stored dates
// are midnight UTC, so the derived day is expressed the same way.
func (r DateRange) StartedBy(now time.Time, loc *time.Location) bool {
	y, m, d := now.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !day.Before(r.start)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.start.Format("2006-01-02"), r.end.Format("2006-01-02"))
}

// Money is an exact currency amount in cents. All pricing arithmetic is
// integer math; two fractional digits are materialized only at render time.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) MulDays(days int) Money {
	return Money{cents: m.cents * int64(days)}
}

// Half truncates toward zero on an odd cent count, consistent with the
// two-digit precision of the stored totals.
func (m Money) Half() Money {
	return Money{cents: m.cents / 2}
}

// String renders the amount with two fractional digits, e.g. "123.45".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
