package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo-planner/internal/models"
	"todo-planner/internal/repository"
	"todo-planner/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.Task{}, &models.Category{})
	suite.Require().NoError(err)

	taskService := services.NewTaskService(repository.NewTaskRepository(suite.db))
	handler := NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	tasks := suite.router.Group("/api/tasks")
	{
		tasks.GET("", handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.GET("/:id", handler.GetTask)
		tasks.GET("/:id/subtasks", handler.ListSubtasks)
		tasks.PUT("/:id", handler.UpdateTask)
		tasks.DELETE("/:id", handler.DeleteTask)
	}
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) decodeTask(w *httptest.ResponseRecorder) models.Task {
	var task models.Task
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func (suite *TaskHandlerTestSuite) decodeTasks(w *httptest.ResponseRecorder) []models.Task {
	var tasks []models.Task
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	return tasks
}

func (suite *TaskHandlerTestSuite) TestTaskLifecycle() {
	// Create
	w := suite.request(http.MethodPost, "/api/tasks", gin.H{
		"title":     "Pay bills",
		"date_time": "2024-03-05T10:00",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	created := suite.decodeTask(w)
	suite.Equal("Pay bills", created.Title)
	suite.Equal("Other", created.Category)

	// The day view returns exactly that task
	w = suite.request(http.MethodGet, "/api/tasks?date=2024-03-05", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	tasks := suite.decodeTasks(w)
	suite.Require().Len(tasks, 1)
	suite.Equal(created.ID, tasks[0].ID)

	// Complete it; the title stays put
	url := fmt.Sprintf("/api/tasks/%d", created.ID)
	w = suite.request(http.MethodPut, url, gin.H{"completed": true})
	suite.Require().Equal(http.StatusOK, w.Code)
	updated := suite.decodeTask(w)
	suite.True(updated.Completed)
	suite.Equal("Pay bills", updated.Title)

	// Delete, then the task is gone
	w = suite.request(http.MethodDelete, url, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, url, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NullDateTimeClears() {
	w := suite.request(http.MethodPost, "/api/tasks", gin.H{
		"title":     "Dentist",
		"date_time": "2024-03-05T10:00",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	created := suite.decodeTask(w)

	url := fmt.Sprintf("/api/tasks/%d", created.ID)

	// Omitting date_time leaves the schedule alone
	w = suite.request(http.MethodPut, url, gin.H{"title": "Dentist appointment"})
	suite.Require().Equal(http.StatusOK, w.Code)
	updated := suite.decodeTask(w)
	suite.Require().NotNil(updated.DateTime)
	suite.Equal("2024-03-05T10:00", *updated.DateTime)

	// An explicit null unschedules the task
	w = suite.request(http.MethodPut, url, gin.H{"date_time": nil})
	suite.Require().Equal(http.StatusOK, w.Code)
	updated = suite.decodeTask(w)
	suite.Nil(updated.DateTime)
}

func (suite *TaskHandlerTestSuite) TestListTasks_MonthView() {
	suite.request(http.MethodPost, "/api/tasks", gin.H{"title": "december", "date_time": "2024-12-31T23:59"})
	suite.request(http.MethodPost, "/api/tasks", gin.H{"title": "january", "date_time": "2025-01-01T00:00"})

	w := suite.request(http.MethodGet, "/api/tasks?year=2024&month=12", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	tasks := suite.decodeTasks(w)
	suite.Require().Len(tasks, 1)
	suite.Equal("december", tasks[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_InvalidParams() {
	w := suite.request(http.MethodGet, "/api/tasks?date=not-a-date", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/api/tasks?year=2024&month=13", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_RequiresTitle() {
	w := suite.request(http.MethodPost, "/api/tasks", gin.H{"category": "Work"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestSubtasks() {
	w := suite.request(http.MethodPost, "/api/tasks", gin.H{"title": "parent"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	parent := suite.decodeTask(w)

	w = suite.request(http.MethodPost, "/api/tasks", gin.H{"title": "child", "parent_id": parent.ID})
	suite.Require().Equal(http.StatusCreated, w.Code)
	child := suite.decodeTask(w)
	suite.Require().NotNil(child.ParentID)
	suite.Equal(parent.ID, *child.ParentID)

	// Nesting below a subtask is rejected
	w = suite.request(http.MethodPost, "/api/tasks", gin.H{"title": "grandchild", "parent_id": child.ID})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d/subtasks", parent.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	subtasks := suite.decodeTasks(w)
	suite.Require().Len(subtasks, 1)
	suite.Equal("child", subtasks[0].Title)

	// Cascade: deleting the parent removes the child
	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", parent.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", child.ID), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	w := suite.request(http.MethodDelete, "/api/tasks/999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
