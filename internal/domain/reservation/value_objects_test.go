//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"car-rental-api/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) reservation.DateRange {
	t.Helper()
	r, err := reservation.NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestDateRange(t *testing.T) {
	t.Run("duration counts whole days", func(t *testing.T) {
		r := mustRange(t, date(2024, 1, 1), date(2024, 1, 4))
		assert.Equal(t, 3, r.Days())
	})

	t.Run("time of day is discarded", func(t *testing.T) {
		r := mustRange(t,
			time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC),
			time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC),
		)
		assert.Equal(t, date(2024, 1, 1), r.Start())
		assert.Equal(t, date(2024, 1, 4), r.End())
		assert.Equal(t, 3, r.Days())
	})

	t.Run("start must precede end", func(t *testing.T) {
		_, err := reservation.NewDateRange(date(2024, 1, 4), date(2024, 1, 1))
		assert.ErrorIs(t, err, reservation.ErrInvalidDateRange)

		_, err = reservation.NewDateRange(date(2024, 1, 1), date(2024, 1, 1))
		assert.ErrorIs(t, err, reservation.ErrInvalidDateRange)
	})

	t.Run("overlap boundaries are inclusive", func(t *testing.T) {
		base := mustRange(t, date(2024, 3, 10), date(2024, 3, 15))

		cases := []struct {
			name     string
			other    reservation.DateRange
			overlaps bool
		}{
			{"identical", mustRange(t, date(2024, 3, 10), date(2024, 3, 15)), true},
			{"contained", mustRange(t, date(2024, 3, 11), date(2024, 3, 14)), true},
			{"starts on end day", mustRange(t, date(2024, 3, 15), date(2024, 3, 20)), true},
			{"ends on start day", mustRange(t, date(2024, 3, 5), date(2024, 3, 10)), true},
			{"strictly before", mustRange(t, date(2024, 3, 1), date(2024, 3, 9)), false},
			{"strictly after", mustRange(t, date(2024, 3, 16), date(2024, 3, 20)), false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlaps, base.Overlaps(tc.other))
				assert.Equal(t, tc.overlaps, tc.other.Overlaps(base))
			})
		}
	})

	t.Run("started by day granularity", func(t *testing.T) {
		r := mustRange(t, date(2024, 5, 10), date(2024, 5, 12))
		assert.False(t, r.StartedBy(date(2024, 5, 9), time.UTC))
		assert.True(t, r.StartedBy(date(2024, 5, 10), time.UTC))
		assert.True(t, r.StartedBy(time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC), time.UTC))
		assert.True(t, r.StartedBy(date(2024, 5, 11), time.UTC))
	})

	t.Run("started by follows the rental timezone calendar", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)
		r := mustRange(t, date(2024, 5, 10), date(2024, 5, 12))

		// 2024-05-09 16:00 UTC is already 2024-05-10 in Tokyo.
		eve := time.Date(2024, 5, 9, 16, 0, 0, 0, time.UTC)
		assert.True(t, r.StartedBy(eve, tokyo))
		assert.False(t, r.StartedBy(eve, time.UTC))
	})
}

func TestMoney(t *testing.T) {
	t.Run("renders two fractional digits", func(t *testing.T) {
		assert.Equal(t, "123.45", reservation.NewMoney(12345).String())
		assert.Equal(t, "0.05", reservation.NewMoney(5).String())
		assert.Equal(t, "0.00", reservation.NewMoney(0).String())
		assert.Equal(t, "-10.50", reservation.NewMoney(-1050).String())
	})

	t.Run("half truncates odd cents toward zero", func(t *testing.T) {
		assert.Equal(t, int64(5000), reservation.NewMoney(10000).Half().Cents())
		assert.Equal(t, int64(50), reservation.NewMoney(101).Half().Cents())
	})

	t.Run("rejects negative construction", func(t *testing.T) {
		_, err := reservation.NewMoneyFromCents(-1)
		assert.ErrorIs(t, err, reservation.ErrNegativeAmount)
	})
}
