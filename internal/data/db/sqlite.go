package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

// OpenSQLite opens a file or in-memory database for local runs and tests.
func OpenSQLite(path string, logg *logger.Logger) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	if logg != nil {
		logg.Debug("Opened sqlite database", "path", path)
	}
	return db, nil
}
