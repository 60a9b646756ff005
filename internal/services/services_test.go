package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/auction-house/internal/config"
	"github.com/yukikurage/auction-house/internal/database"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: ":memory:",
		LogLevel:   "error",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
