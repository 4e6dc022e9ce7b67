package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"todo-planner/internal/models"
	"todo-planner/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns all tasks, tasks on a single day (?date=YYYY-MM-DD),
// or tasks within a month (?year=&month=)
func (h *TaskHandler) ListTasks(c *gin.Context) {
	dateStr := c.Query("date")
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	var (
		tasks []models.Task
		err   error
	)

	switch {
	case dateStr != "":
		if _, parseErr := time.Parse("2006-01-02", dateStr); parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		tasks, err = h.taskService.ListTasksByDate(dateStr)

	case yearStr != "" && monthStr != "":
		year, yearErr := strconv.Atoi(yearStr)
		month, monthErr := strconv.Atoi(monthStr)
		if yearErr != nil || monthErr != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year or month"})
			return
		}
		tasks, err = h.taskService.ListTasksByMonth(year, month)

	default:
		tasks, err = h.taskService.ListTasks()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask returns a single task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListSubtasks returns the subtasks of a task, oldest first
func (h *TaskHandler) ListSubtasks(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListSubtasks(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subtasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Category    string  `json:"category"`
		IsImportant bool    `json:"is_important"`
		IsUrgent    bool    `json:"is_urgent"`
		DateTime    *string `json:"date_time"`
		ParentID    *uint64 `json:"parent_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Category:    req.Category,
		IsImportant: req.IsImportant,
		IsUrgent:    req.IsUrgent,
		DateTime:    req.DateTime,
		ParentID:    req.ParentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		case errors.Is(err, services.ErrParentNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent task not found"})
		case errors.Is(err, services.ErrParentIsSubtask):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subtasks cannot have their own subtasks"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task. Only fields present in
// the body are applied; date_time set to JSON null unschedules the task,
// while an omitted date_time leaves it alone.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string         `json:"title"`
		Category    *string         `json:"category"`
		IsImportant *bool           `json:"is_important"`
		IsUrgent    *bool           `json:"is_urgent"`
		Completed   *bool           `json:"completed"`
		DateTime    json.RawMessage `json:"date_time"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Category:    req.Category,
		IsImportant: req.IsImportant,
		IsUrgent:    req.IsUrgent,
		Completed:   req.Completed,
	}

	// Absent key vs explicit null: RawMessage is empty when the key was
	// omitted and holds "null" when the client unschedules the task.
	if len(req.DateTime) > 0 {
		if string(req.DateTime) == "null" {
			input.ClearDateTime = true
		} else {
			var value string
			if err := json.Unmarshal(req.DateTime, &value); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_time"})
				return
			}
			input.DateTime = &value
		}
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, services.ErrTitleEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task and its subtasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.taskService.GetTask(id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
