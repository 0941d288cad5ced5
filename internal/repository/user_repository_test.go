package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_CountByType(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT user_type, COUNT\(\*\) AS count FROM "users" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"user_type", "count"}).
			AddRow("employee", int64(5)).
			AddRow("assistant", int64(2)).
			AddRow("admin", int64(1)))

	counts, err := repo.CountByType()
	require.NoError(t, err)
	require.Equal(t, int64(5), counts[models.UserTypeEmployee])
	require.Equal(t, int64(2), counts[models.UserTypeAssistant])
	require.Equal(t, int64(1), counts[models.UserTypeAdmin])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteRunsInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET "assigned_by"=\$1 WHERE assigned_by = \$2`).
		WithArgs(nil, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE user_id = \$1`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "incentives" WHERE user_id = \$1`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET "assigned_by"=\$1 WHERE assigned_by = \$2`).
		WithArgs(nil, uint64(7)).
		WillReturnError(gorm.ErrInvalidTransaction)
	mock.ExpectRollback()

	require.Error(t, repo.Delete(7))
	require.NoError(t, mock.ExpectationsWereMet())
}
