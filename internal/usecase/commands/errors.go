package commands

import "car-rental-api/internal/pkg/errs"

// Sentinels the handler layer maps onto HTTP statuses. Callers match
// with errors.Is; the wrapped cause keeps the detail for logs.
var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrVehicleNotFound     = errs.New("vehicle not found")
	ErrCustomerNotFound    = errs.New("customer not found")
	ErrCustomerIneligible  = errs.New("customer is not eligible to make reservations")
	ErrVehicleUnavailable  = errs.New("vehicle is not available for rental")
	ErrDateConflict        = errs.New("vehicle is already reserved for the requested dates")
	ErrValidation          = errs.New("invalid reservation request")
	ErrNotPermitted        = errs.New("operation not permitted for this user")
	ErrInvalidCredentials  = errs.New("invalid email or password")
	ErrEmailTaken          = errs.New("email address is already registered")
)
