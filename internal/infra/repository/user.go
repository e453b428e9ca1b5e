package repository

import (
	"context"
	"time"

	"car-rental-api/internal/domain/user"
	"car-rental-api/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx infra.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id`,
		u.ID(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) CreateProfile(ctx context.Context, tx infra.DBTX, p *user.Profile) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO user_profiles (user_id, phone, license_number, is_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`,
		p.UserID(), p.Phone(), p.LicenseNumber(), p.IsVerified(), p.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user profile", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, tx infra.DBTX, id uuid.UUID) (*user.User, error) {
	var (
		email, passwordHash, role string
		isActive                  bool
		createdAt, updatedAt      time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT email, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE id = $1`,
		id,
	).Scan(&email, &passwordHash, &role, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid email", err)
	}
	roleVO, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has invalid role", err)
	}

	return user.ReconstructUser(id, emailVO, passwordHash, roleVO, isActive, createdAt, updatedAt), nil
}

// FindProfile returns nil without error when the user has no profile;
// the eligibility check treats that case distinctly.
func (r *UserRepository) FindProfile(ctx context.Context, tx infra.DBTX, userID uuid.UUID) (*user.Profile, error) {
	var (
		phone, licenseNumber string
		isVerified, isActive bool
	)
	err := tx.QueryRow(ctx, `
		SELECT phone, license_number, is_verified, is_active
		FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&phone, &licenseNumber, &isVerified, &isActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find user profile", err)
	}

	return user.ReconstructProfile(userID, phone, licenseNumber, isVerified, isActive), nil
}
