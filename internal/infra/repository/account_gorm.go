package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

const pgUniqueViolation = "23505"

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *AccountGormRepository) FindActiveByEmailOrPhone(
	ctx context.Context,
	email string,
	phone string,
) (*models.User, error) {

	q := r.db.WithContext(ctx).Where("is_active = ?", true)

	switch {
	case email != "" && phone != "":
		q = q.Where("email = ? OR phone = ?", email, phone)
	case email != "":
		q = q.Where("email = ?", email)
	case phone != "":
		q = q.Where("phone = ?", phone)
	default:
		return nil, domain.ErrNotFound
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *AccountGormRepository) FindActiveByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND email = ?", true, email).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *AccountGormRepository) FindByID(
	ctx context.Context,
	id string,
) (*models.User, error) {

	// ids are uuid columns; anything else cannot match a row
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AccountGormRepository) ActiveSalonPhoneExists(
	ctx context.Context,
	phone string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("is_active = ? AND REPLACE(phone, ' ', '') = ?", true, phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *AccountGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *AccountGormRepository) UpdateLastLogin(
	ctx context.Context,
	id string,
	at time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountGormRepository) UpdatePassword(
	ctx context.Context,
	id string,
	hashed string,
	at time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{
			"password":   hashed,
			"updated_at": at,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// translate maps driver errors onto the domain sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
