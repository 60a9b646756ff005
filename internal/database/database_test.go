package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/auction-house/internal/config"
	"github.com/yukikurage/auction-house/internal/models"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpen_SQLiteInMemoryAndMigrate(t *testing.T) {
	db, err := Open(&config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:", LogLevel: "error"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "auctions", "bids"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Bid{}, "idx_bids_auction_timestamp"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, gormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel("INFO"))
	assert.Equal(t, gormlogger.Error, gormLogLevel("error"))
	assert.Equal(t, gormlogger.Silent, gormLogLevel(""))
}
