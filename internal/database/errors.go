package database

import (
	"log"

	"fleetworks/internal/models"
)

// ReportError writes a row to the centralized error log. Best-effort: a
// failure to report must never break the operation being reported on.
func ReportError(userID uint, context string, err error) {
	if DB == nil || err == nil {
		return
	}
	record := models.ErrorReport{
		UserID:  userID,
		Context: context,
		Message: err.Error(),
	}
	_ = DB.Create(&record).Error
}

// ReportWarning records a partial failure: the primary operation succeeded
// but a secondary step (defect generation, maintenance update) did not.
func ReportWarning(userID uint, context string, err error) {
	if err == nil {
		return
	}
	log.Printf("warning in %s: %v", context, err)
	if DB == nil {
		return
	}
	record := models.ErrorReport{
		UserID:  userID,
		Context: context,
		Message: err.Error(),
		Warning: true,
	}
	_ = DB.Create(&record).Error
}
