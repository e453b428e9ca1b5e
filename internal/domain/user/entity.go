package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAccountInactive = errors.New("user account is not active")
	ErrProfileMissing  = errors.New("user has no rental profile")
	ErrNotEligible     = errors.New("user is not eligible to make reservations")
)

// User is the account entity used for authentication and actor identity.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
	}
}

func ReconstructUser(id uuid.UUID, email Email, passwordHash string, role Role, isActive bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Profile holds the rental-specific verification state of a customer.
// A customer may reserve only when the profile exists, is verified and
// is itself active; the account's own active flag is checked separately.
type Profile struct {
	userID        uuid.UUID
	phone         string
	licenseNumber string
	isVerified    bool
	isActive      bool
}

func NewProfile(userID uuid.UUID, phone, licenseNumber string) *Profile {
	return &Profile{
		userID:        userID,
		phone:         phone,
		licenseNumber: licenseNumber,
		isActive:      true,
	}
}

func ReconstructProfile(userID uuid.UUID, phone, licenseNumber string, isVerified, isActive bool) *Profile {
	return &Profile{
		userID:        userID,
		phone:         phone,
		licenseNumber: licenseNumber,
		isVerified:    isVerified,
		isActive:      isActive,
	}
}

func (p *Profile) UserID() uuid.UUID     { return p.userID }
func (p *Profile) Phone() string         { return p.phone }
func (p *Profile) LicenseNumber() string { return p.licenseNumber }
func (p *Profile) IsVerified() bool      { return p.isVerified }
func (p *Profile) IsActive() bool        { return p.isActive }

func (p *Profile) CanMakeReservations() bool {
	return p.isVerified && p.isActive
}

// CheckEligibility is the eligibility oracle for new reservations.
// A nil profile is a distinct failure from an unverified or suspended one.
func CheckEligibility(account *User, profile *Profile) error {
	if !account.IsActive() {
		return ErrAccountInactive
	}
	if profile == nil {
		return ErrProfileMissing
	}
	if !profile.CanMakeReservations() {
		return ErrNotEligible
	}
	return nil
}
