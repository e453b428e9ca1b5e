package api

import (
	"context"
	"errors"
	"net/http"

	"car-rental-api/internal/domain/reservation"
	reqdto "car-rental-api/internal/handler/dto/request"
	resdto "car-rental-api/internal/handler/dto/response"
	"car-rental-api/internal/handler/httperr"
	"car-rental-api/internal/pkg/errs"
	"car-rental-api/internal/usecase/commands"
	"car-rental-api/internal/usecase/queries"
	"car-rental-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qrys queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create reservation
// @Description Book a vehicle for a date range
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	input := commands.CreateReservationInput{
		VehicleID:  req.VehicleID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		CustomerID: req.CustomerID,
	}

	id, err := h.commands.Create(c.Request.Context(), actor, input)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateReservationResponse{ID: id})
}

// @Summary List reservations
// @Description Customers see their own reservations, staff see all
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	items, err := h.queries.ListForActor(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	response := make([]*resdto.ReservationListResponse, len(items))
	for i := range items {
		response[i] = resdto.FromReservationListItem(&items[i])
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get reservation
// @Description Get reservation by ID, owner or staff only
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, queries.ErrNotPermitted):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Activate reservation
// @Description Mark a confirmed reservation as picked up, staff only
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/activate [post]
func (h *ReservationHandler) ActivateReservation(c *gin.Context) {
	h.lifecycle(c, h.commands.Activate)
}

// @Summary Complete reservation
// @Description Mark an active rental as returned, staff only
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.lifecycle(c, h.commands.Complete)
}

// @Summary Cancel reservation
// @Description Cancel a pending or confirmed reservation, owner or staff
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation reason"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
			return
		}
	}

	fee, err := h.commands.Cancel(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CancelReservationResponse{CancellationFee: fee.String()})
}

// @Summary Preview cancellation fee
// @Description Quote the fee without cancelling
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancellationFeeResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancellation-fee [get]
func (h *ReservationHandler) GetCancellationFee(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	fee, err := h.commands.PreviewCancellationFee(c.Request.Context(), actor, id)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CancellationFeeResponse{CancellationFee: fee.String()})
}

// @Summary Cancellation policy
// @Description The fee ladder applied when cancelling
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CancellationPolicyResponse
// @Router /reservations/cancellation-policy [get]
func (h *ReservationHandler) GetCancellationPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromPolicy(reservation.CancellationPolicy()))
}

// @Summary Delete reservation
// @Description Remove a reservation outright, staff only
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	h.lifecycle(c, h.commands.Delete)
}

func (h *ReservationHandler) lifecycle(c *gin.Context, op func(ctx context.Context, actor shared.Actor, id uuid.UUID) error) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := op(c.Request.Context(), actor, id); err != nil {
		h.writeCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// writeCommandError maps command sentinels onto HTTP statuses. Conflict
// and validation responses surface err.Error() so callers see the
// blocking date range or the failed rule.
func (h *ReservationHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, commands.ErrVehicleNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found", nil)
	case errors.Is(err, commands.ErrCustomerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Customer not found", nil)
	case errors.Is(err, commands.ErrNotPermitted):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
	case errors.Is(err, commands.ErrDateConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	case errors.Is(err, reservation.ErrVehicleOccupied):
		httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle already has an active rental", nil)
	case errors.Is(err, reservation.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid status transition", nil)
	case errors.Is(err, commands.ErrVehicleUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Vehicle is not available for rental", nil)
	case errors.Is(err, commands.ErrCustomerIneligible):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Customer is not eligible to rent", nil)
	case errors.Is(err, reservation.ErrNotYetStarted):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation start date has not arrived", nil)
	case errors.Is(err, reservation.ErrNotCancellable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Only pending or confirmed reservations can be cancelled", nil)
	case errors.Is(err, commands.ErrValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}

// requireActor pulls the authenticated actor set by the auth middleware.
// Reaching a protected handler without it is a routing bug.
func requireActor(c *gin.Context) (shared.Actor, bool) {
	actor, ok := actorFrom(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("authentication context missing"), "Internal error", nil)
		return shared.Actor{}, false
	}
	return actor, true
}
