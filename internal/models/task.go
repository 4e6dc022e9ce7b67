package models

import "time"

// DefaultTaskCategory is stored when a task is created without a category.
const DefaultTaskCategory = "Other"

// Task is a single to-do entry. A task with a non-nil ParentID is a
// subtask; nesting is one level deep, a subtask is never a parent.
//
// DateTime is kept as text in the local naive "YYYY-MM-DDTHH:MM" form.
// Day and month queries compare it with SQLite's date(), so no timezone
// conversion ever happens. A nil DateTime means the task is unscheduled
// and excluded from date-scoped queries.
//
// Category is a plain label copied from the taxonomy at write time, not
// a foreign key. Renaming or deleting a Category leaves tasks untouched.
type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Category    string    `gorm:"type:varchar(100);not null;default:'Other'" json:"category"`
	IsImportant bool      `gorm:"not null;default:false" json:"is_important"`
	IsUrgent    bool      `gorm:"not null;default:false" json:"is_urgent"`
	DateTime    *string   `gorm:"type:text" json:"date_time"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	ParentID    *uint64   `gorm:"index" json:"parent_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Subtasks []Task `gorm:"foreignKey:ParentID" json:"-"`
}
