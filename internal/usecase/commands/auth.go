package commands

import (
	"context"

	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/infra"
	"car-rental-api/internal/pkg/errs"
	"car-rental-api/internal/pkg/jwt"
	"car-rental-api/internal/pkg/password"
	"car-rental-api/internal/usecase/queries"
	"car-rental-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Email         string
	Password      string
	Phone         string
	LicenseNumber string
}

type LoginOutput struct {
	Token string
	User  queries.AuthorizedUserView
}

type AuthCommands interface {
	Register(ctx context.Context, input RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, email, rawPassword string) (*LoginOutput, error)
}

type authCommandsImpl struct {
	tx    shared.TxRunner
	users UserRepository
	store queries.UserReadStore
	jwt   *jwt.Service
}

func NewAuthCommands(tx shared.TxRunner, users UserRepository, store queries.UserReadStore, jwtSvc *jwt.Service) AuthCommands {
	return &authCommandsImpl{tx: tx, users: users, store: store, jwt: jwtSvc}
}

// Register creates a customer account with its rental profile in one
// transaction. New profiles start unverified, so the account cannot book
// until staff verifies the license.
func (c *authCommandsImpl) Register(ctx context.Context, input RegisterInput) (uuid.UUID, error) {
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}
	pw, err := user.NewPassword(input.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}
	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	account := user.NewUser(email, hash, user.RoleCustomer)
	profile := user.NewProfile(account.ID(), input.Phone, input.LicenseNumber)

	var id uuid.UUID
	err = c.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		id, err = c.users.Create(ctx, tx, account)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrEmailTaken)
			}
			return err
		}
		return c.users.CreateProfile(ctx, tx, profile)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Login verifies credentials and issues a token. Unknown emails and bad
// passwords return the same error.
func (c *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginOutput, error) {
	cred, err := c.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, errs.Wrap(err, "failed to look up credentials")
	}
	if cred == nil {
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(cred.PasswordHash, rawPassword); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}
	if !cred.User.IsActive {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(cred.User.Role)
	if err != nil {
		return nil, errs.Wrap(err, "stored user has invalid role")
	}
	token, err := c.jwt.GenerateToken(cred.User.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to issue token")
	}
	return &LoginOutput{Token: token, User: cred.User}, nil
}
