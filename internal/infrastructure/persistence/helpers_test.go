package persistence

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paymentflow/backend/internal/infrastructure/persistence/models"
)

// newSQLiteDB opens an isolated in-memory database with the service schema
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := Open(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.DB.AutoMigrate(
		&models.ClientModel{},
		&models.ReceivableModel{},
		&models.ReminderProfileModel{},
		&models.SubscriptionModel{},
		&models.EmailSettingsModel{},
	))
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

// newMockGorm creates a postgres-dialect GORM handle backed by sqlmock
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return db.DB, mock, mockDB
}
