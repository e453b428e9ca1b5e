package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	// Staff may book on behalf of a customer.
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}
