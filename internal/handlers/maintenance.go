package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetworks/internal/database"
	"fleetworks/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type maintenanceUpdateRequest struct {
	ServicedAt     *time.Time `json:"serviced_at"`
	NextServiceDue *time.Time `json:"next_service_due"`
	Mileage        *int64     `json:"mileage"`
	Comment        string     `json:"comment"`
}

// UpdateMaintenanceByVehicle upserts the vehicle's maintenance record and
// prepends the comment to its notes trail.
func UpdateMaintenanceByVehicle(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil || vehicleID <= 0 {
		fail(c, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, vehicleID).Error; err != nil {
		fail(c, http.StatusNotFound, "vehicle not found")
		return
	}

	var req maintenanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var record models.MaintenanceRecord
	err = database.DB.Where("vehicle_id = ?", vehicle.ID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.MaintenanceRecord{VehicleID: vehicle.ID}
	} else if err != nil {
		failInternal(c, "maintenance_update", err)
		return
	}

	if req.ServicedAt != nil {
		record.ServicedAt = req.ServicedAt
	}
	if req.NextServiceDue != nil {
		record.NextServiceDue = req.NextServiceDue
	}
	if req.Mileage != nil {
		record.Mileage = *req.Mileage
	}
	if comment := strings.TrimSpace(req.Comment); comment != "" {
		line := fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04"), comment)
		if record.Notes == "" {
			record.Notes = line
		} else {
			record.Notes = line + "\n" + record.Notes
		}
	}

	if err := database.DB.Save(&record).Error; err != nil {
		failInternal(c, "maintenance_update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"maintenance": record})
}

func GetMaintenanceByVehicle(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Param("vehicleId"))
	if err != nil || vehicleID <= 0 {
		fail(c, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var record models.MaintenanceRecord
	if err := database.DB.Where("vehicle_id = ?", vehicleID).First(&record).Error; err != nil {
		fail(c, http.StatusNotFound, "no maintenance record for this vehicle")
		return
	}
	c.JSON(http.StatusOK, gin.H{"maintenance": record})
}

// DeleteArchivedVehicle removes an archived vehicle row for good. Restricted
// to admins and managers; the response says whether historic inspections
// were orphaned by the deletion.
func DeleteArchivedVehicle(c *gin.Context) {
	archiveID, err := strconv.Atoi(c.Param("archiveId"))
	if err != nil || archiveID <= 0 {
		fail(c, http.StatusBadRequest, "invalid archive ID")
		return
	}

	var archive models.VehicleArchive
	if err := database.DB.First(&archive, archiveID).Error; err != nil {
		fail(c, http.StatusNotFound, "archive not found")
		return
	}

	var inspectionCount int64
	if err := database.DB.Model(&models.Inspection{}).
		Where("vehicle_id = ?", archive.VehicleID).
		Count(&inspectionCount).Error; err != nil {
		failInternal(c, "archive_delete", err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("id = ? AND archived = ?", archive.VehicleID, true).
			Delete(&models.Vehicle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&archive).Error
	})
	if err != nil {
		failInternal(c, "archive_delete", err)
		return
	}

	message := fmt.Sprintf("archived vehicle %s deleted", archive.Registration)
	if inspectionCount > 0 {
		message = fmt.Sprintf("archived vehicle %s deleted; %d historic inspections preserved as orphaned",
			archive.Registration, inspectionCount)
	}
	c.JSON(http.StatusOK, gin.H{
		"message":              message,
		"orphaned_inspections": inspectionCount,
	})
}

func ListErrorReports(c *gin.Context) {
	var reports []models.ErrorReport
	if err := database.DB.Order("created_at desc").Limit(200).Find(&reports).Error; err != nil {
		failInternal(c, "error_report_list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
