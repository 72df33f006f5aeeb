// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"context"
	"testing"

	"projectledger/config"
	"projectledger/database"
	"projectledger/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory sqlite database closed at test cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), &config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     database.MemoryPath,
		LogLevel: "silent",
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
