package api

import (
	"car-rental-api/internal/handler/middleware"
	"car-rental-api/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// actorFrom rebuilds the acting user from the auth middleware context.
func actorFrom(c *gin.Context) (shared.Actor, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		return shared.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return shared.Actor{}, false
	}
	return shared.Actor{ID: id, Role: role}, true
}
