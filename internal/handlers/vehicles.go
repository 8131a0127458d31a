package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetworks/internal/database"
	"fleetworks/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListVehicles(c *gin.Context) {
	dbq := database.DB.Order("registration asc")
	if c.Query("include_archived") != "true" {
		dbq = dbq.Where("archived = ?", false)
	}

	var vehicles []models.Vehicle
	if err := dbq.Find(&vehicles).Error; err != nil {
		failInternal(c, "vehicle_list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

type vehicleRequest struct {
	Registration string `json:"registration" binding:"required"`
	Make         string `json:"make"`
	VehicleModel string `json:"vehicle_model"`
	VIN          string `json:"vin"`
	Mileage      int64  `json:"mileage"`
}

func CreateVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "registration is required")
		return
	}

	reg := strings.ToUpper(strings.TrimSpace(req.Registration))
	if len(reg) < 2 {
		fail(c, http.StatusBadRequest, "registration is too short")
		return
	}

	var count int64
	database.DB.Model(&models.Vehicle{}).
		Where("registration = ?", reg).
		Count(&count)
	if count > 0 {
		fail(c, http.StatusBadRequest, "a vehicle with this registration already exists")
		return
	}

	vehicle := models.Vehicle{
		Registration: reg,
		Make:         strings.TrimSpace(req.Make),
		VehicleModel: strings.TrimSpace(req.VehicleModel),
		VIN:          strings.TrimSpace(req.VIN),
		Mileage:      req.Mileage,
	}
	if err := database.DB.Create(&vehicle).Error; err != nil {
		failInternal(c, "vehicle_create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func GetVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, id).Error; err != nil {
		fail(c, http.StatusNotFound, "vehicle not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

func UpdateVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, id).Error; err != nil {
		fail(c, http.StatusNotFound, "vehicle not found")
		return
	}

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "registration is required")
		return
	}

	reg := strings.ToUpper(strings.TrimSpace(req.Registration))
	if reg != vehicle.Registration {
		var count int64
		database.DB.Model(&models.Vehicle{}).
			Where("registration = ? AND id <> ?", reg, vehicle.ID).
			Count(&count)
		if count > 0 {
			fail(c, http.StatusBadRequest, "a vehicle with this registration already exists")
			return
		}
	}

	vehicle.Registration = reg
	vehicle.Make = strings.TrimSpace(req.Make)
	vehicle.VehicleModel = strings.TrimSpace(req.VehicleModel)
	vehicle.VIN = strings.TrimSpace(req.VIN)
	vehicle.Mileage = req.Mileage

	if err := database.DB.Save(&vehicle).Error; err != nil {
		failInternal(c, "vehicle_update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

type archiveRequest struct {
	Reason string `json:"reason"`
}

// ArchiveVehicle removes a vehicle from the active fleet: the row is
// flagged archived and a copy lands in the archive table. Inspections
// keep their vehicle reference.
func ArchiveVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid vehicle ID")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, id).Error; err != nil {
		fail(c, http.StatusNotFound, "vehicle not found")
		return
	}
	if vehicle.Archived {
		fail(c, http.StatusBadRequest, "vehicle is already archived")
		return
	}

	var req archiveRequest
	_ = c.ShouldBindJSON(&req)

	identity, _ := currentIdentity(c)

	archive := models.VehicleArchive{
		VehicleID:    vehicle.ID,
		Registration: vehicle.Registration,
		Make:         vehicle.Make,
		VehicleModel: vehicle.VehicleModel,
		Mileage:      vehicle.Mileage,
		Reason:       strings.TrimSpace(req.Reason),
		ArchivedByID: identity.UserID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archive).Error; err != nil {
			return err
		}
		vehicle.Archived = true
		return tx.Save(&vehicle).Error
	})
	if err != nil {
		failInternal(c, "vehicle_archive", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"archive": archive})
}
