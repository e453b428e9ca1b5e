package response

import (
	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string                      `json:"access_token"`
	User        *queries.AuthorizedUserView `json:"user"`
}

type RegisterResponse struct {
	ID uuid.UUID `json:"id"`
}
