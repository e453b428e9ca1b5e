package api

import (
	"net/http"

	resdto "car-rental-api/internal/handler/dto/response"
	"car-rental-api/internal/handler/httperr"
	"car-rental-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	sweep commands.SweepCommands
}

func NewAdminHandler(sweep commands.SweepCommands) *AdminHandler {
	return &AdminHandler{sweep: sweep}
}

// @Summary Run reservation sweep
// @Description Activate, complete and cancel reservations whose dates have arrived, staff only
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/sweep [post]
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result, err := h.sweep.RunSweep(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.SweepResponse{
		Activated: result.Activated,
		Completed: result.Completed,
		Cancelled: result.Cancelled,
	})
}
