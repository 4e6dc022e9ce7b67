package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todo-planner/internal/models"
)

// EnsureSubtaskColumn upgrades databases created before subtasks existed.
// Those schemas lack the parent_id column on tasks; add it and leave the
// existing rows with parent_id = NULL. Safe to run on every startup: when
// the column is already there this is a no-op, and a racing "duplicate
// column" failure is swallowed rather than surfaced.
func EnsureSubtaskColumn(db *gorm.DB) error {
	if db.Migrator().HasColumn(&models.Task{}, "parent_id") {
		return nil
	}

	if err := db.Migrator().AddColumn(&models.Task{}, "ParentID"); err != nil {
		if strings.Contains(err.Error(), "duplicate column name") {
			return nil
		}
		return fmt.Errorf("failed to add parent_id column: %w", err)
	}

	return nil
}
