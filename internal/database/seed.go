package database

import (
	"fmt"

	"gorm.io/gorm"

	"todo-planner/internal/models"
)

var defaultCategories = []models.Category{
	{Name: "Work", Color: "#4F46E5", SortOrder: 1},
	{Name: "Personal", Color: "#10B981", SortOrder: 2},
	{Name: "Health", Color: "#EF4444", SortOrder: 3},
	{Name: "Shopping", Color: "#F59E0B", SortOrder: 4},
	{Name: "Study", Color: "#8B5CF6", SortOrder: 5},
	{Name: "Other", Color: models.DefaultCategoryColor, SortOrder: 6},
}

// SeedDefaultCategories inserts the default taxonomy into an empty
// category table. A table with any rows at all is left alone.
func SeedDefaultCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := make([]models.Category, len(defaultCategories))
	copy(categories, defaultCategories)

	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}

	return nil
}
