package queries

import (
	"time"

	"car-rental-api/internal/domain/vehicle"

	"github.com/google/uuid"
)

// Read models (DTO for the read side).

// VehicleSummary is the vehicle as embedded in reservation views,
// including the derived availability object.
type VehicleSummary struct {
	ID             uuid.UUID            `json:"id"`
	Brand          string               `json:"brand"`
	Model          string               `json:"model"`
	Year           int                  `json:"year"`
	Color          string               `json:"color"`
	DailyRateCents int64                `json:"daily_rate_cents"`
	Availability   vehicle.Availability `json:"availability"`
}

type ReservationView struct {
	ID                   uuid.UUID      `json:"id"`
	CustomerID           uuid.UUID      `json:"customer_id"`
	CustomerEmail        string         `json:"customer_email"`
	Vehicle              VehicleSummary `json:"vehicle"`
	StartDate            time.Time      `json:"start_date"`
	EndDate              time.Time      `json:"end_date"`
	DurationDays         int            `json:"duration_days"`
	DailyRateCents       int64          `json:"daily_rate_cents"`
	TotalAmountCents     int64          `json:"total_amount_cents"`
	Status               string         `json:"status"`
	CancellationFeeCents *int64         `json:"cancellation_fee_cents,omitempty"`
	CancellationDate     *time.Time     `json:"cancellation_date,omitempty"`
	CancellationReason   *string        `json:"cancellation_reason,omitempty"`
	CancelledBy          *uuid.UUID     `json:"cancelled_by,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

type ReservationListItem struct {
	ID               uuid.UUID `json:"id"`
	VehicleID        uuid.UUID `json:"vehicle_id"`
	VehicleName      string    `json:"vehicle_name"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	DurationDays     int       `json:"duration_days"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type VehicleView struct {
	ID             uuid.UUID            `json:"id"`
	Brand          string               `json:"brand"`
	Model          string               `json:"model"`
	Year           int                  `json:"year"`
	Color          string               `json:"color"`
	DailyRateCents int64                `json:"daily_rate_cents"`
	InFleet        bool                 `json:"in_fleet"`
	IsRented       bool                 `json:"is_rented"`
	IsDamaged      bool                 `json:"is_damaged"`
	IsMaintenance  bool                 `json:"is_maintenance"`
	Availability   vehicle.Availability `json:"availability"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
