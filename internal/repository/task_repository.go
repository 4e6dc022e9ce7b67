package repository

import (
	"fmt"

	"gorm.io/gorm"

	"todo-planner/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// Top-level tasks sort before subtasks. SQLite happens to order NULL
// first on a plain ASC sort, but the full key is spelled out so the
// ordering does not hinge on an engine default.
const parentFirstOrder = "CASE WHEN parent_id IS NULL THEN 0 ELSE 1 END, parent_id ASC"

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ListAll retrieves every task, parents and subtasks intermixed. Callers
// split the result by parent_id.
func (r *GormTaskRepository) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Order("date_time ASC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByDate retrieves tasks whose date_time falls on the given calendar
// day. The stored text is compared with SQLite's date(), so the
// time-of-day component is ignored and no timezone conversion happens.
// Unscheduled tasks (NULL date_time) never match.
func (r *GormTaskRepository) ListByDate(day string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("date(date_time) = date(?)", day).
		Order(parentFirstOrder + ", date_time ASC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByMonth retrieves tasks scheduled in the half-open window
// [year-month-01, nextMonth-01), rolling December over into January.
func (r *GormTaskRepository) ListByMonth(year, month int) ([]models.Task, error) {
	start := fmt.Sprintf("%04d-%02d-01", year, month)

	endYear, endMonth := year, month+1
	if month == 12 {
		endYear, endMonth = year+1, 1
	}
	end := fmt.Sprintf("%04d-%02d-01", endYear, endMonth)

	var tasks []models.Task
	if err := r.db.
		Where("date(date_time) >= date(?) AND date(date_time) < date(?)", start, end).
		Order(parentFirstOrder + ", date_time ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListSubtasks retrieves the subtasks of a task in creation order.
func (r *GormTaskRepository) ListSubtasks(parentID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task together with its subtasks. Both deletes run in
// a single transaction so a reader never observes a subtask without its
// parent, or the other way around. Deleting a missing id affects zero
// rows and is not an error.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
