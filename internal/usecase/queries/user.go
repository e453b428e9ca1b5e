package queries

import (
	"context"

	"car-rental-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

// CredentialView carries the password hash alongside the user view for
// login verification. It never leaves the usecase layer.
type CredentialView struct {
	User         AuthorizedUserView
	PasswordHash string
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*CredentialView, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch user")
	}
	if view == nil {
		return nil, ErrUserNotFound
	}
	return view, nil
}
