package models

import (
	"time"

	"gorm.io/gorm"
)

type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
)

type Timesheet struct {
	gorm.Model
	EmployeeID uint      `gorm:"index;not null" json:"employee_id"`
	WeekEnding time.Time `gorm:"not null;index" json:"week_ending"`

	Status TimesheetStatus `gorm:"type:varchar(20);not null" json:"status"`

	DecisionComment string     `gorm:"type:text" json:"decision_comment,omitempty"`
	DecidedByID     uint       `json:"decided_by_id,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`

	Entries []TimesheetEntry `json:"entries,omitempty"`
}

type TimesheetEntry struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	TimesheetID uint    `gorm:"index;not null" json:"timesheet_id"`
	Day         int     `gorm:"not null" json:"day"` // 1 = Monday
	Hours       float64 `gorm:"not null" json:"hours"`
	Note        string  `gorm:"size:255" json:"note,omitempty"`
}
