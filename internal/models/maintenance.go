package models

import (
	"time"

	"gorm.io/gorm"
)

// MaintenanceRecord holds the per-vehicle service state updated through the
// maintenance endpoint. One row per vehicle.
type MaintenanceRecord struct {
	gorm.Model
	VehicleID uint `gorm:"uniqueIndex;not null" json:"vehicle_id"`

	ServicedAt     *time.Time `json:"serviced_at,omitempty"`
	NextServiceDue *time.Time `json:"next_service_due,omitempty"`
	Mileage        int64      `json:"mileage"`

	// Newest-first comment trail, one line per update.
	Notes string `gorm:"type:text" json:"notes,omitempty"`
}
