package repository

import (
	"todo-planner/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// ListAll retrieves every task, scheduled ones first in date order
	ListAll() ([]models.Task, error)

	// ListByDate retrieves tasks scheduled on a calendar day (YYYY-MM-DD)
	ListByDate(day string) ([]models.Task, error)

	// ListByMonth retrieves tasks scheduled within a calendar month
	ListByMonth(year, month int) ([]models.Task, error)

	// ListSubtasks retrieves the subtasks of a task, oldest first
	ListSubtasks(parentID uint64) ([]models.Task, error)

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// Create creates a new task
	Create(task *models.Task) error

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task and its subtasks
	Delete(id uint64) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// ListAll retrieves every category in manual display order
	ListAll() ([]models.Category, error)

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// Create creates a new category at the end of the display order
	Create(category *models.Category) error

	// Update persists changes to a category
	Update(category *models.Category) error

	// Delete removes a category; tasks keep their label
	Delete(id uint64) error
}
