package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockLogger(t *testing.T) (*Logger, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return New(gdb), mock
}

func TestLogger_Write(t *testing.T) {
	l, mock := newMockLogger(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	id := "u-1"
	err := l.Write(context.Background(), Event{
		UserID:   &id,
		Action:   ActionUserRegistered,
		IP:       "10.0.0.1",
		Metadata: map[string]any{"role": "CUSTOMER"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogger_List(t *testing.T) {
	l, mock := newMockLogger(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE user_id = .+ AND action = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE user_id = .+ AND action = .+ ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "ip", "user_agent", "metadata", "created_at"}).
			AddRow(3, "u-1", ActionUserLoggedIn, "10.0.0.1", "curl", "", now))

	logs, total, err := l.List(context.Background(), Filter{
		UserID: "u-1",
		Action: ActionUserLoggedIn,
		Page:   2,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionUserLoggedIn, logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
