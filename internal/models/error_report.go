package models

import "time"

// ErrorReport is a centralized record of unexpected failures. Partial
// failures (defect generation, maintenance updates) land here as warnings
// without blocking the primary operation.
type ErrorReport struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID  uint
	Context string `gorm:"size:100;not null"` // "inspection_submit", "task_complete" etc.
	Message string `gorm:"type:text;not null"`
	Warning bool   `gorm:"not null;default:false"`
}
