//go:build unit || e2e

package builder

import (
	"time"

	"car-rental-api/internal/domain/reservation"
	"car-rental-api/internal/domain/vehicle"
	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	VehicleID      uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	DailyRateCents int64
	Status         reservation.Status
	CreatedAt      time.Time
}

// NewReservationBuilder defaults to a confirmed three-day rental
// starting a week from now.
func NewReservationBuilder() *ReservationBuilder {
	start := time.Now().UTC().AddDate(0, 0, 7)
	return &ReservationBuilder{
		ID:             uuid.New(),
		CustomerID:     uuid.New(),
		VehicleID:      uuid.New(),
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 3),
		DailyRateCents: 10000,
		Status:         reservation.StatusConfirmed,
		CreatedAt:      time.Now().UTC(),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	r.Status = status
	return r
}

func (r *ReservationBuilder) WithDates(start, end time.Time) *ReservationBuilder {
	r.StartDate = start
	r.EndDate = end
	return r
}

func (r *ReservationBuilder) WithDailyRateCents(cents int64) *ReservationBuilder {
	r.DailyRateCents = cents
	return r
}

func (r *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	dates, err := reservation.NewDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}

	rate := reservation.NewMoney(r.DailyRateCents)
	return reservation.ReconstructReservation(
		r.ID, r.CustomerID, r.VehicleID,
		dates,
		rate, reservation.TotalAmount(rate, dates),
		r.Status,
		nil,
		r.CreatedAt, r.CreatedAt,
	), nil
}

func (r *ReservationBuilder) days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	days := r.days()
	return &queries.ReservationView{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerEmail: "test@example.com",
		Vehicle: queries.VehicleSummary{
			ID:             r.VehicleID,
			Brand:          "Toyota",
			Model:          "Corolla",
			Year:           2022,
			Color:          "white",
			DailyRateCents: r.DailyRateCents,
			Availability:   vehicle.Availability{Available: true, Status: "available"},
		},
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		DurationDays:     days,
		DailyRateCents:   r.DailyRateCents,
		TotalAmountCents: r.DailyRateCents * int64(days),
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() queries.ReservationListItem {
	days := r.days()
	return queries.ReservationListItem{
		ID:               r.ID,
		VehicleID:        r.VehicleID,
		VehicleName:      "Toyota Corolla (2022)",
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		DurationDays:     days,
		TotalAmountCents: r.DailyRateCents * int64(days),
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
	}
}
