package models

import "gorm.io/gorm"

type Vehicle struct {
	gorm.Model
	Registration string `gorm:"uniqueIndex;size:16;not null" json:"registration"`
	Make         string `gorm:"size:64" json:"make"`
	VehicleModel string `gorm:"size:64" json:"vehicle_model"`
	VIN          string `gorm:"size:64" json:"vin"`
	Mileage      int64  `json:"mileage"`
	Archived     bool   `gorm:"not null;default:false" json:"archived"`
}

// VehicleArchive keeps a copy of a vehicle removed from the active fleet.
// Inspections keep pointing at the original vehicle ID, so deleting an
// archive row can orphan historic inspections.
type VehicleArchive struct {
	gorm.Model
	VehicleID    uint   `gorm:"index;not null" json:"vehicle_id"`
	Registration string `gorm:"size:16;not null" json:"registration"`
	Make         string `gorm:"size:64" json:"make"`
	VehicleModel string `gorm:"size:64" json:"vehicle_model"`
	Mileage      int64  `json:"mileage"`
	Reason       string `gorm:"type:text" json:"reason"`
	ArchivedByID uint   `json:"archived_by_id"`
}
