package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todo-planner/internal/models"
	"todo-planner/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrParentNotFound  = errors.New("parent task not found")
	ErrParentIsSubtask = errors.New("a subtask cannot have its own subtasks")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Category    string
	IsImportant bool
	IsUrgent    bool
	DateTime    *string
	ParentID    *uint64
}

// UpdateTaskInput represents input for updating a task. A nil field is
// left untouched; a non-nil pointer applies even when it carries false
// or an empty value. ClearDateTime unschedules the task.
type UpdateTaskInput struct {
	Title         *string
	Category      *string
	IsImportant   *bool
	IsUrgent      *bool
	Completed     *bool
	DateTime      *string
	ClearDateTime bool
}

// ListTasks returns every task, parents and subtasks intermixed
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksByDate returns tasks scheduled on a calendar day (YYYY-MM-DD)
func (s *TaskService) ListTasksByDate(day string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByDate(day)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by date: %w", err)
	}
	return tasks, nil
}

// ListTasksByMonth returns tasks scheduled within a calendar month
func (s *TaskService) ListTasksByMonth(year, month int) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByMonth(year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by month: %w", err)
	}
	return tasks, nil
}

// ListSubtasks returns the subtasks of a task, oldest first
func (s *TaskService) ListSubtasks(parentID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListSubtasks(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subtasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task or ErrTaskNotFound
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task with defaults applied and returns the stored
// row. A parent_id must point at an existing top-level task.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	category := input.Category
	if category == "" {
		category = models.DefaultTaskCategory
	}

	if input.ParentID != nil {
		parent, err := s.taskRepo.FindByID(*input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to find parent task: %w", err)
		}
		if parent.ParentID != nil {
			return nil, ErrParentIsSubtask
		}
	}

	task := &models.Task{
		Title:       title,
		Category:    category,
		IsImportant: input.IsImportant,
		IsUrgent:    input.IsUrgent,
		DateTime:    input.DateTime,
		ParentID:    input.ParentID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// UpdateTask applies the provided fields to an existing task and returns
// the stored row. An input with nothing set is a no-op that still
// returns the current row.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input == (UpdateTaskInput{}) {
		return task, nil
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = title
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.IsImportant != nil {
		task.IsImportant = *input.IsImportant
	}
	if input.IsUrgent != nil {
		task.IsUrgent = *input.IsUrgent
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.ClearDateTime {
		task.DateTime = nil
	} else if input.DateTime != nil {
		task.DateTime = input.DateTime
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// DeleteTask removes a task and its subtasks. Deleting an id that does
// not exist is not an error.
func (s *TaskService) DeleteTask(id uint64) error {
	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
