package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskSource string
type TaskStatus string

const (
	SourceInspection TaskSource = "inspection"
	SourceManual     TaskSource = "manual"

	TaskPending   TaskStatus = "pending"
	TaskLogged    TaskStatus = "logged"
	TaskOnHold    TaskStatus = "on_hold"
	TaskCompleted TaskStatus = "completed"
)

// Event tags used in the task history log. "resumed" and "undo" are tags,
// not task statuses.
const (
	EventLogged    = "logged"
	EventOnHold    = "on_hold"
	EventResumed   = "resumed"
	EventCompleted = "completed"
	EventUndo      = "undo"
)

type WorkshopTask struct {
	gorm.Model
	Source    TaskSource `gorm:"type:varchar(20);not null" json:"source"`
	VehicleID uint       `gorm:"index;not null" json:"vehicle_id"`
	Vehicle   Vehicle    `json:"vehicle,omitempty"`

	CategoryID    uint `gorm:"index" json:"category_id"`
	SubcategoryID uint `json:"subcategory_id"`

	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	// Set only on inspection-derived tasks; used to match a later
	// resolution back to this task.
	InspectionID    *uint  `gorm:"index" json:"inspection_id,omitempty"`
	ItemNo          int    `json:"item_no,omitempty"`
	ItemDescription string `gorm:"size:255" json:"item_description,omitempty"`

	// Actioned is true exactly when Status == completed.
	Actioned     bool       `gorm:"not null;default:false" json:"actioned"`
	ActionedAt   *time.Time `json:"actioned_at,omitempty"`
	ActionedByID uint       `json:"actioned_by_id,omitempty"`

	LoggedAt      *time.Time `json:"logged_at,omitempty"`
	LoggedByID    uint       `json:"logged_by_id,omitempty"`
	LoggedComment string     `gorm:"size:300" json:"logged_comment,omitempty"`

	CreatedByID uint `gorm:"index" json:"created_by_id"`

	Events   []TaskEvent   `json:"events,omitempty"`
	Comments []TaskComment `json:"comments,omitempty"`
}

// TaskEvent is one entry in a task's status history. Rows are append-only:
// they are created on a transition and never updated afterwards.
type TaskEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TaskID uint `gorm:"index;not null" json:"task_id"`

	Status   string `gorm:"size:20;not null" json:"status"`
	Body     string `gorm:"type:text" json:"body"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	Author   User   `json:"author,omitempty"`

	// Undo metadata: the statuses before and after the transition.
	FromStatus TaskStatus `gorm:"size:20" json:"from_status,omitempty"`
	ToStatus   TaskStatus `gorm:"size:20" json:"to_status,omitempty"`
}

// TaskComment is a free-text timeline entry, editable only by its author.
type TaskComment struct {
	gorm.Model
	TaskID   uint   `gorm:"index;not null" json:"task_id"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	Author   User   `json:"author,omitempty"`
	Body     string `gorm:"type:text;not null" json:"body"`
}
