package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

// OpenSQLite opens a file-backed or in-memory sqlite database. An empty path
// means a private in-memory database.
func OpenSQLite(logg *logger.Logger, path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "file::memory:?cache=shared"
	}
	log := logg.With("service", "SQLite")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	log.Info("opened sqlite", "path", path)
	return db, nil
}

// Open picks the driver by name: "postgres" (default) or "sqlite".
func Open(logg *logger.Logger, driver, sqlitePath string) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return OpenSQLite(logg, sqlitePath)
	case "", "postgres", "postgresql":
		return OpenPostgres(logg, PostgresDSN())
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}
