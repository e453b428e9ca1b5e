package api

import (
	"errors"
	"net/http"

	reqdto "car-rental-api/internal/handler/dto/request"
	resdto "car-rental-api/internal/handler/dto/response"
	"car-rental-api/internal/handler/httperr"
	"car-rental-api/internal/handler/middleware"
	"car-rental-api/internal/pkg/errs"
	"car-rental-api/internal/usecase/commands"
	"car-rental-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	commands commands.AuthCommands
	users    queries.UserQueries
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries) *AuthHandler {
	return &AuthHandler{
		commands: cmds,
		users:    users,
	}
}

// @Summary Register
// @Description Create a customer account with its rental profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Account details"
// @Success 201 {object} resdto.RegisterResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	id, err := h.commands.Register(c.Request.Context(), commands.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			httperr.AbortWithError(c, http.StatusConflict, err, "Email already registered", nil)
		case errors.Is(err, commands.ErrValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.RegisterResponse{ID: id})
}

// @Summary Login
// @Description Verify credentials and issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	out, err := h.commands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: out.Token,
		User:        &out.User,
	})
}

// @Summary Current user
// @Description The authenticated user's account summary
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("authentication context missing"), "Internal error", nil)
		return
	}

	view, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
