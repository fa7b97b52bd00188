package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"oh-crepe-api/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDB is the database path for a throwaway in-memory store.
const MemoryDB = ":memory:"

// newGormLogger reports slow queries and failures through zap. Lookups that
// find nothing are expected on login and registration and are not logged.
func newGormLogger(log *zap.Logger) logger.Interface {
	std, err := zap.NewStdLogAt(log.Named("gorm"), zap.WarnLevel)
	if err != nil {
		std = zap.NewStdLog(log.Named("gorm"))
	}
	return logger.New(std, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// OpenDB connects to the SQLite database at cfg.Path, enables foreign keys
// and migrates all models. Demo data is seeded when cfg.SeedDemoData is set.
func OpenDB(cfg DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Path != MemoryDB {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(cfg.Path)), &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen < 1 || cfg.Path == MemoryDB {
		// every connection to :memory: is a separate database
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if cfg.SeedDemoData {
		if err := SeedDemoData(db, log); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	log.Info("database connected and migrated", zap.String("path", cfg.Path))
	return db, nil
}

// Migrate auto-migrates all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.CartItem{},
	)
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
