package readstore

import (
	"context"
	"errors"

	"car-rental-api/internal/infra"
	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, role, is_active FROM users WHERE id = $1`, id,
	).Scan(&view.ID, &view.Email, &view.Role, &view.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to fetch user view", err)
	}
	return &view, nil
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.CredentialView, error) {
	var cred queries.CredentialView
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, role, is_active, password_hash FROM users WHERE email = $1`, email,
	).Scan(&cred.User.ID, &cred.User.Email, &cred.User.Role, &cred.User.IsActive, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to fetch user credentials", err)
	}
	return &cred, nil
}
