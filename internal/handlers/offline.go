package handlers

import (
	"net/http"

	"fleetworks/internal/database"
	"fleetworks/internal/models"
	"fleetworks/internal/offline"

	"github.com/gin-gonic/gin"
)

func OfflineStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"pending": offlineQueue.Len(),
		"entries": offlineQueue.Pending(),
	})
}

// ReplayOffline retries the queued inspection submissions in order. The
// first failure stops the replay and keeps the remainder queued.
func ReplayOffline(c *gin.Context) {
	replayed, err := offlineQueue.Replay(func(sub offline.Submission) error {
		insp := sub.Inspection
		carried := carriedDefectsFor(insp.VehicleID, insp.WeekEnding)
		if err := saveInspection(&insp, 0); err != nil {
			return err
		}
		if insp.Status == models.InspectionSubmitted {
			var vehicle models.Vehicle
			_ = database.DB.First(&vehicle, insp.VehicleID).Error
			// warnings are already reported inside submitSideEffects
			_ = submitSideEffects(&insp, vehicle.Registration, carried, insp.EmployeeID)
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"replayed": replayed,
			"pending":  offlineQueue.Len(),
			"error":    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"replayed": replayed, "pending": 0})
}
