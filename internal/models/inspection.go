package models

import (
	"time"

	"gorm.io/gorm"
)

type InspectionStatus string
type ItemStatus string

const (
	InspectionDraft     InspectionStatus = "draft"
	InspectionSubmitted InspectionStatus = "submitted"

	ItemOK        ItemStatus = "ok"
	ItemAttention ItemStatus = "attention"
)

// Inspection is one employee's weekly safety checklist for one vehicle.
// At most one submitted inspection may exist per (vehicle, week-ending).
type Inspection struct {
	gorm.Model
	VehicleID  uint    `gorm:"index;not null" json:"vehicle_id"`
	Vehicle    Vehicle `json:"vehicle,omitempty"`
	EmployeeID uint    `gorm:"index;not null" json:"employee_id"`

	// The Sunday closing the 7-day inspection period.
	WeekEnding time.Time        `gorm:"not null;index" json:"week_ending"`
	Mileage    int64            `json:"mileage"`
	Status     InspectionStatus `gorm:"type:varchar(20);not null" json:"status"`
	Signature  string           `gorm:"type:text" json:"signature,omitempty"`

	Items []InspectionItem `json:"items,omitempty"`
}

// InspectionItem is one checklist entry for one day. Day 1 is Monday,
// day 7 the week-ending Sunday.
type InspectionItem struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	InspectionID uint `gorm:"index;not null" json:"inspection_id"`

	Day         int        `gorm:"not null" json:"day"`
	ItemNo      int        `gorm:"not null" json:"item_no"`
	Description string     `gorm:"size:255;not null" json:"description"`
	Status      ItemStatus `gorm:"type:varchar(20);not null" json:"status"`

	// Required when Status == attention.
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	// Required when the same item was a defect on the vehicle's most
	// recent prior submitted inspection and is now marked ok.
	ResolutionComment string `gorm:"type:text" json:"resolution_comment,omitempty"`
}
