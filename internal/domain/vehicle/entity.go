package vehicle

import (
	"errors"
	"time"

	"car-rental-api/internal/domain/reservation"

	"github.com/google/uuid"
)

var (
	ErrInvalidYear      = errors.New("vehicle year must be between 1900 and 2030")
	ErrInvalidDailyRate = errors.New("daily rate must be greater than 0")
	ErrNotInFleet       = errors.New("vehicle is not in fleet")
	ErrDamaged          = errors.New("vehicle is damaged and cannot be rented")
	ErrUnderMaintenance = errors.New("vehicle is under maintenance and cannot be rented")
)

// Vehicle is the fleet entity. The operational flags (in-fleet, damaged,
// maintenance) gate new reservations; isRented mirrors "an active rental
// currently occupies this vehicle" and is driven by the reservation
// lifecycle, never set directly by fleet management.
type Vehicle struct {
	id            uuid.UUID
	brand         string
	model         string
	year          int
	color         string
	dailyRate     reservation.Money
	inFleet       bool
	isRented      bool
	isDamaged     bool
	isMaintenance bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewVehicle(brand, model string, year int, color string, dailyRate reservation.Money) (*Vehicle, error) {
	if year < 1900 || year > 2030 {
		return nil, ErrInvalidYear
	}
	if dailyRate.Cents() <= 0 {
		return nil, ErrInvalidDailyRate
	}
	return &Vehicle{
		id:        uuid.New(),
		brand:     brand,
		model:     model,
		year:      year,
		color:     color,
		dailyRate: dailyRate,
		inFleet:   true,
	}, nil
}

func ReconstructVehicle(
	id uuid.UUID,
	brand, model string,
	year int,
	color string,
	dailyRate reservation.Money,
	inFleet, isRented, isDamaged, isMaintenance bool,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:            id,
		brand:         brand,
		model:         model,
		year:          year,
		color:         color,
		dailyRate:     dailyRate,
		inFleet:       inFleet,
		isRented:      isRented,
		isDamaged:     isDamaged,
		isMaintenance: isMaintenance,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (v *Vehicle) ID() uuid.UUID                { return v.id }
func (v *Vehicle) Brand() string                { return v.brand }
func (v *Vehicle) Model() string                { return v.model }
func (v *Vehicle) Year() int                    { return v.year }
func (v *Vehicle) Color() string                { return v.color }
func (v *Vehicle) DailyRate() reservation.Money { return v.dailyRate }
func (v *Vehicle) InFleet() bool                { return v.inFleet }
func (v *Vehicle) IsRented() bool               { return v.isRented }
func (v *Vehicle) IsDamaged() bool              { return v.isDamaged }
func (v *Vehicle) IsMaintenance() bool          { return v.isMaintenance }
func (v *Vehicle) CreatedAt() time.Time         { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time         { return v.updatedAt }

// CheckRentable reports why a vehicle cannot take new reservations, or nil.
// isRented is deliberately not consulted: availability for a future date
// range is governed by the conflict checker, since a vehicle rented today
// may be free next month.
func (v *Vehicle) CheckRentable() error {
	if !v.inFleet {
		return ErrNotInFleet
	}
	if v.isDamaged {
		return ErrDamaged
	}
	if v.isMaintenance {
		return ErrUnderMaintenance
	}
	return nil
}

func (v *Vehicle) IsRentable() bool {
	return v.CheckRentable() == nil
}

// StatusLabel is the human-readable operational status, with maintenance
// and damage taking precedence over the rented flag.
func (v *Vehicle) StatusLabel() string {
	switch {
	case !v.inFleet:
		return "Out of Fleet"
	case v.isMaintenance:
		return "In Maintenance"
	case v.isDamaged:
		return "Damaged"
	case v.isRented:
		return "Rented"
	default:
		return "Available"
	}
}

// Availability is the summary object exposed on API responses.
type Availability struct {
	Available bool   `json:"available"`
	Status    string `json:"status"`
}

func (v *Vehicle) Availability() Availability {
	return Availability{
		Available: v.IsRentable(),
		Status:    v.StatusLabel(),
	}
}
