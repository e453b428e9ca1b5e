//go:build unit || e2e

package builder

import (
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/vehicle"

	"github.com/google/uuid"
)

type VehicleBuilder struct {
	Brand          string
	Model          string
	Year           int
	Color          string
	DailyRateCents int64
	InFleet        bool
	IsRented       bool
	IsDamaged      bool
	IsMaintenance  bool
}

func NewVehicleBuilder() *VehicleBuilder {
	return &VehicleBuilder{
		Brand:          "Toyota",
		Model:          "Corolla",
		Year:           2022,
		Color:          "white",
		DailyRateCents: 10000,
		InFleet:        true,
	}
}

func (v *VehicleBuilder) With(mutate func(*VehicleBuilder)) *VehicleBuilder {
	mutate(v)
	return v
}

func (v *VehicleBuilder) WithDailyRateCents(cents int64) *VehicleBuilder {
	v.DailyRateCents = cents
	return v
}

func (v *VehicleBuilder) Damaged() *VehicleBuilder {
	v.IsDamaged = true
	return v
}

func (v *VehicleBuilder) InMaintenance() *VehicleBuilder {
	v.IsMaintenance = true
	return v
}

func (v *VehicleBuilder) Rented() *VehicleBuilder {
	v.IsRented = true
	return v
}

func (v *VehicleBuilder) OutOfFleet() *VehicleBuilder {
	v.InFleet = false
	return v
}

func (v *VehicleBuilder) BuildDomain() *vehicle.Vehicle {
	now := time.Now()
	return vehicle.ReconstructVehicle(
		uuid.New(), v.Brand, v.Model, v.Year, v.Color,
		reservation.NewMoney(v.DailyRateCents),
		v.InFleet, v.IsRented, v.IsDamaged, v.IsMaintenance,
		now, now,
	)
}
