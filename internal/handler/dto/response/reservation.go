package response

import (
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/pkg/ptr"
	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type VehicleSummaryResponse struct {
	ID           uuid.UUID            `json:"id"`
	Brand        string               `json:"brand"`
	Model        string               `json:"model"`
	Year         int                  `json:"year"`
	Color        string               `json:"color"`
	DailyRate    string               `json:"daily_rate"`
	Availability AvailabilityResponse `json:"availability"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Status    string `json:"status"`
}

type ReservationResponse struct {
	ID                 uuid.UUID              `json:"id"`
	CustomerID         uuid.UUID              `json:"customer_id"`
	CustomerEmail      string                 `json:"customer_email"`
	Vehicle            VehicleSummaryResponse `json:"vehicle"`
	StartDate          string                 `json:"start_date"`
	EndDate            string                 `json:"end_date"`
	DurationDays       int                    `json:"duration_days"`
	DailyRate          string                 `json:"daily_rate"`
	TotalAmount        string                 `json:"total_amount"`
	Status             string                 `json:"status"`
	CancellationFee    *string                `json:"cancellation_fee,omitempty"`
	CancellationDate   *time.Time             `json:"cancellation_date,omitempty"`
	CancellationReason *string                `json:"cancellation_reason,omitempty"`
	CancelledBy        *uuid.UUID             `json:"cancelled_by,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

type ReservationListResponse struct {
	ID           uuid.UUID `json:"id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	VehicleName  string    `json:"vehicle_name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DurationDays int       `json:"duration_days"`
	TotalAmount  string    `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateReservationResponse struct {
	ID uuid.UUID `json:"id"`
}

type CancelReservationResponse struct {
	CancellationFee string `json:"cancellation_fee"`
}

type CancellationFeeResponse struct {
	CancellationFee string `json:"cancellation_fee"`
}

type PolicyBandResponse struct {
	MinHoursBeforeStart int `json:"min_hours_before_start"`
	FeePercent          int `json:"fee_percent"`
}

type CancellationPolicyResponse struct {
	Bands []PolicyBandResponse `json:"bands"`
}

type SweepResponse struct {
	Activated int `json:"activated"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

const dateLayout = "2006-01-02"

func money(cents int64) string {
	return reservation.NewMoney(cents).String()
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                 rm.ID,
		CustomerID:         rm.CustomerID,
		CustomerEmail:      rm.CustomerEmail,
		Vehicle:            fromVehicleSummary(rm.Vehicle),
		StartDate:          rm.StartDate.Format(dateLayout),
		EndDate:            rm.EndDate.Format(dateLayout),
		DurationDays:       rm.DurationDays,
		DailyRate:          money(rm.DailyRateCents),
		TotalAmount:        money(rm.TotalAmountCents),
		Status:             rm.Status,
		CancellationDate:   rm.CancellationDate,
		CancellationReason: rm.CancellationReason,
		CancelledBy:        rm.CancelledBy,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
	if rm.CancellationFeeCents != nil {
		resp.CancellationFee = ptr.To(money(*rm.CancellationFeeCents))
	}
	return resp
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:           rm.ID,
		VehicleID:    rm.VehicleID,
		VehicleName:  rm.VehicleName,
		StartDate:    rm.StartDate.Format(dateLayout),
		EndDate:      rm.EndDate.Format(dateLayout),
		DurationDays: rm.DurationDays,
		TotalAmount:  money(rm.TotalAmountCents),
		Status:       rm.Status,
		CreatedAt:    rm.CreatedAt,
	}
}

func fromVehicleSummary(v queries.VehicleSummary) VehicleSummaryResponse {
	return VehicleSummaryResponse{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		DailyRate: money(v.DailyRateCents),
		Availability: AvailabilityResponse{
			Available: v.Availability.Available,
			Status:    v.Availability.Status,
		},
	}
}

func FromPolicy(bands []reservation.PolicyBand) *CancellationPolicyResponse {
	resp := &CancellationPolicyResponse{Bands: make([]PolicyBandResponse, 0, len(bands))}
	for _, b := range bands {
		resp.Bands = append(resp.Bands, PolicyBandResponse{
			MinHoursBeforeStart: b.MinHours,
			FeePercent:          b.FeePercent,
		})
	}
	return resp
}
