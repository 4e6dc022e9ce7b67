package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-planner/internal/config"
	"todo-planner/internal/models"
)

var DB *gorm.DB

// Connect opens the SQLite store at cfg.DBPath, creating the parent
// directory for plain file paths.
func Connect(cfg *config.Config) error {
	if err := ensureDirForSQLite(cfg.DBPath); err != nil {
		return err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: dbLogger,
		// Surface unique violations as gorm.ErrDuplicatedKey so the
		// category name conflict stays distinguishable from other faults.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

// Migrate brings the schema up to date and seeds the default taxonomy.
// Seeding only happens when this open created the category table, so a
// user who deleted all categories is not re-seeded on the next start.
func Migrate() error {
	seedCategories := !DB.Migrator().HasTable(&models.Category{})

	if err := DB.AutoMigrate(&models.Task{}, &models.Category{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := EnsureSubtaskColumn(DB); err != nil {
		return err
	}

	if seedCategories {
		if err := SeedDefaultCategories(DB); err != nil {
			return err
		}
	}

	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

// ensureDirForSQLite creates the parent dir for the SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
