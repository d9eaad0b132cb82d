package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/bookmylook-auth/internal/domain/account"
	"github.com/BruksfildServices01/bookmylook-auth/internal/models"
)

func newMockRepo(t *testing.T) (*AccountGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewAccountGormRepository(gdb), mock
}

var userColumns = []string{
	"id", "email", "phone", "password", "first_name", "last_name", "role",
	"email_verified", "phone_verified", "is_active", "last_login", "created_at", "updated_at",
}

func TestAccountGorm_FindActiveByEmailOrPhone(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE is_active = .+ AND .*email = .+ OR phone = .+`).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			"u-1", "a@b.com", "9876543210", "$2a$hash", "Ann", "", "CUSTOMER",
			false, false, true, nil, now, now,
		))

	u, err := repo.FindActiveByEmailOrPhone(context.Background(), "a@b.com", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, models.RoleCustomer, u.Role)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "9876543210", *u.Phone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGorm_FindActiveByEmailOrPhone_NoIdentifier(t *testing.T) {
	repo, mock := newMockRepo(t)

	_, err := repo.FindActiveByEmailOrPhone(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGorm_FindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = `).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByID(context.Background(), "3c9d6a4e-1f2b-4e8a-9d7c-5b0e8f1a2c34")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGorm_FindByID_MalformedIDSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	for _, id := range []string{"abc", "missing", "", "1 OR 1=1"} {
		_, err := repo.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}

	// with no expectations set, any query would come back as a mock error
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGorm_ActiveSalonPhoneExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "salons" WHERE is_active = .+ AND REPLACE\(phone, ' ', ''\) = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ActiveSalonPhoneExists(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGorm_CreateDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_active_email"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{
		Email:     "a@b.com",
		FirstName: "Ann",
		Role:      models.RoleCustomer,
		IsActive:  true,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGorm_UpdatePassword(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET .*"password"=.*WHERE id = .+ AND is_active = `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdatePassword(context.Background(), "u-1", "$2a$new", time.Now())
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGorm_UpdatePassword_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdatePassword(context.Background(), "gone", "$2a$new", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), domain.ErrDuplicate)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}
