//go:build unit

package vehicle_test

import (
	"testing"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/vehicle"
	"car-rental-api/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicle(t *testing.T) {
	t.Run("joins the fleet on creation", func(t *testing.T) {
		v, err := vehicle.NewVehicle("Toyota", "Corolla", 2022, "white", reservation.NewMoney(10000))
		require.NoError(t, err)
		assert.True(t, v.InFleet())
		assert.True(t, v.IsRentable())
	})

	t.Run("rejects implausible years", func(t *testing.T) {
		_, err := vehicle.NewVehicle("Ford", "Model T", 1899, "black", reservation.NewMoney(10000))
		assert.ErrorIs(t, err, vehicle.ErrInvalidYear)

		_, err = vehicle.NewVehicle("Fiction", "Hover", 2031, "silver", reservation.NewMoney(10000))
		assert.ErrorIs(t, err, vehicle.ErrInvalidYear)
	})

	t.Run("rejects non-positive daily rate", func(t *testing.T) {
		_, err := vehicle.NewVehicle("Toyota", "Corolla", 2022, "white", reservation.NewMoney(0))
		assert.ErrorIs(t, err, vehicle.ErrInvalidDailyRate)
	})
}

func TestCheckRentable(t *testing.T) {
	cases := []struct {
		name  string
		build func() *vehicle.Vehicle
		errIs error
	}{
		{
			name:  "clean vehicle is rentable",
			build: func() *vehicle.Vehicle { return builder.NewVehicleBuilder().BuildDomain() },
		},
		{
			name:  "rented vehicle is still bookable for future dates",
			build: func() *vehicle.Vehicle { return builder.NewVehicleBuilder().Rented().BuildDomain() },
		},
		{
			name:  "out of fleet",
			build: func() *vehicle.Vehicle { return builder.NewVehicleBuilder().OutOfFleet().BuildDomain() },
			errIs: vehicle.ErrNotInFleet,
		},
		{
			name:  "damaged",
			build: func() *vehicle.Vehicle { return builder.NewVehicleBuilder().Damaged().BuildDomain() },
			errIs: vehicle.ErrDamaged,
		},
		{
			name:  "under maintenance",
			build: func() *vehicle.Vehicle { return builder.NewVehicleBuilder().InMaintenance().BuildDomain() },
			errIs: vehicle.ErrUnderMaintenance,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build().CheckRentable()
			if tc.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.errIs)
			}
		})
	}
}

func TestAvailability(t *testing.T) {
	cases := []struct {
		name      string
		build     func() *vehicle.Vehicle
		available bool
		status    string
	}{
		{"available", func() *vehicle.Vehicle { return builder.NewVehicleBuilder().BuildDomain() }, true, "Available"},
		{"rented", func() *vehicle.Vehicle { return builder.NewVehicleBuilder().Rented().BuildDomain() }, true, "Rented"},
		{"damaged", func() *vehicle.Vehicle { return builder.NewVehicleBuilder().Damaged().BuildDomain() }, false, "Damaged"},
		{"maintenance wins over rented", func() *vehicle.Vehicle {
			return builder.NewVehicleBuilder().Rented().InMaintenance().BuildDomain()
		}, false, "In Maintenance"},
		{"out of fleet", func() *vehicle.Vehicle { return builder.NewVehicleBuilder().OutOfFleet().BuildDomain() }, false, "Out of Fleet"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.build().Availability()
			assert.Equal(t, tc.available, a.Available)
			assert.Equal(t, tc.status, a.Status)
		})
	}
}
