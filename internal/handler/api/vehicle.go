package api

import (
	"errors"
	"net/http"

	reqdto "car-rental-api/internal/handler/dto/request"
	resdto "car-rental-api/internal/handler/dto/response"
	"car-rental-api/internal/handler/httperr"
	"car-rental-api/internal/usecase/commands"
	"car-rental-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	commands commands.VehicleCommands
	queries  queries.VehicleQueries
}

func NewVehicleHandler(cmds commands.VehicleCommands, qrys queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary List vehicles
// @Description List fleet vehicles with their availability
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.VehicleResponse
// @Failure 401 {object} httperr.Response
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	response := make([]*resdto.VehicleResponse, len(views))
	for i := range views {
		response[i] = resdto.FromVehicleView(&views[i])
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get vehicle
// @Description Get a vehicle by ID with its availability
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVehicleView(view))
}

// @Summary Register vehicle
// @Description Add a vehicle to the fleet, staff only
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterVehicleRequest true "Vehicle details"
// @Success 201 {object} resdto.RegisterVehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /vehicles [post]
func (h *VehicleHandler) RegisterVehicle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.RegisterVehicleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	id, err := h.commands.Register(c.Request.Context(), actor, commands.RegisterVehicleInput{
		Brand:          req.Brand,
		Model:          req.Model,
		Year:           req.Year,
		Color:          req.Color,
		DailyRateCents: req.DailyRateCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotPermitted):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Access denied", nil)
		case errors.Is(err, commands.ErrValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.RegisterVehicleResponse{ID: id})
}
