package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

var (
	ErrNotFound  = errors.New("account not found")
	ErrDuplicate = errors.New("account already exists")
)

// Repository is the only path to persisted user records. Lookups by email or
// phone only see active accounts.
type Repository interface {
	// -------- Lookup --------
	FindActiveByEmailOrPhone(
		ctx context.Context,
		email string,
		phone string,
	) (*models.User, error)

	FindActiveByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	FindByID(
		ctx context.Context,
		id string,
	) (*models.User, error)

	// -------- Salon --------
	ActiveSalonPhoneExists(
		ctx context.Context,
		phone string,
	) (bool, error)

	// -------- Write --------
	Create(
		ctx context.Context,
		u *models.User,
	) error

	UpdateLastLogin(
		ctx context.Context,
		id string,
		at time.Time,
	) error

	UpdatePassword(
		ctx context.Context,
		id string,
		hashed string,
		at time.Time,
	) error

	Count(ctx context.Context) (int64, error)
}
