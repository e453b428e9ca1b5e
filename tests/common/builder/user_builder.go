//go:build unit || e2e

package builder

import (
	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		Role:         "customer",
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) Inactive() *UserBuilder {
	u.IsActive = false
	return u
}

func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	account := user.NewUser(email, u.PasswordHash, role)
	if !u.IsActive {
		now := account.CreatedAt()
		account = user.ReconstructUser(account.ID(), email, u.PasswordHash, role, false, now, now)
	}
	return account, nil
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

type ProfileBuilder struct {
	UserID        uuid.UUID
	Phone         string
	LicenseNumber string
	IsVerified    bool
	IsActive      bool
}

func NewProfileBuilder(userID uuid.UUID) *ProfileBuilder {
	return &ProfileBuilder{
		UserID:        userID,
		Phone:         "090-0000-0000",
		LicenseNumber: "D1234567",
		IsVerified:    true,
		IsActive:      true,
	}
}

func (p *ProfileBuilder) Unverified() *ProfileBuilder {
	p.IsVerified = false
	return p
}

func (p *ProfileBuilder) Suspended() *ProfileBuilder {
	p.IsActive = false
	return p
}

func (p *ProfileBuilder) BuildDomain() *user.Profile {
	return user.ReconstructProfile(p.UserID, p.Phone, p.LicenseNumber, p.IsVerified, p.IsActive)
}
