package response

import (
	"time"

	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleResponse struct {
	ID           uuid.UUID            `json:"id"`
	Brand        string               `json:"brand"`
	Model        string               `json:"model"`
	Year         int                  `json:"year"`
	Color        string               `json:"color"`
	DailyRate    string               `json:"daily_rate"`
	Availability AvailabilityResponse `json:"availability"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type RegisterVehicleResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromVehicleView(rm *queries.VehicleView) *VehicleResponse {
	return &VehicleResponse{
		ID:        rm.ID,
		Brand:     rm.Brand,
		Model:     rm.Model,
		Year:      rm.Year,
		Color:     rm.Color,
		DailyRate: money(rm.DailyRateCents),
		Availability: AvailabilityResponse{
			Available: rm.Availability.Available,
			Status:    rm.Availability.Status,
		},
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}
