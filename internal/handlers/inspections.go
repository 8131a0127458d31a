package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetworks/internal/database"
	"fleetworks/internal/inspection"
	"fleetworks/internal/models"
	"fleetworks/internal/offline"
	"fleetworks/internal/workshop"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const weekEndingLayout = "2006-01-02"

// CheckInspectionDuplicate probes for an existing (vehicle, week-ending)
// inspection so the UI can block before the user fills in a whole week.
// The same check is re-run right before the actual save.
func CheckInspectionDuplicate(c *gin.Context) {
	vehicleID, err := strconv.Atoi(c.Query("vehicle_id"))
	if err != nil || vehicleID <= 0 {
		fail(c, http.StatusBadRequest, "vehicle_id is required")
		return
	}
	weekEnding, err := time.Parse(weekEndingLayout, c.Query("week_ending"))
	if err != nil {
		fail(c, http.StatusBadRequest, "week_ending must be YYYY-MM-DD")
		return
	}

	existing := findExisting(database.DB, uint(vehicleID), weekEnding)
	if dupErr := inspection.CheckDuplicate(existing, 0); dupErr != nil {
		var dup *inspection.DuplicateError
		errors.As(dupErr, &dup)
		c.JSON(http.StatusOK, gin.H{
			"duplicate":     true,
			"inspection_id": dup.InspectionID,
			"status":        dup.Status,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"duplicate": false})
}

func ListInspections(c *gin.Context) {
	identity, _ := currentIdentity(c)

	dbq := database.DB.Preload("Vehicle").Order("week_ending desc")
	if !identity.Can(models.RoleAdmin, models.RoleManager) {
		dbq = dbq.Where("employee_id = ?", identity.UserID)
	}
	if v := c.Query("vehicle_id"); v != "" {
		if vid, err := strconv.Atoi(v); err == nil && vid > 0 {
			dbq = dbq.Where("vehicle_id = ?", vid)
		}
	}

	var inspections []models.Inspection
	if err := dbq.Find(&inspections).Error; err != nil {
		failInternal(c, "inspection_list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inspections": inspections})
}

func GetInspection(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid inspection ID")
		return
	}

	var insp models.Inspection
	if err := database.DB.
		Preload("Vehicle").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("day asc, item_no asc")
		}).
		First(&insp, id).Error; err != nil {
		fail(c, http.StatusNotFound, "inspection not found")
		return
	}

	identity, _ := currentIdentity(c)
	if insp.EmployeeID != identity.UserID && !identity.Can(models.RoleAdmin, models.RoleManager) {
		fail(c, http.StatusForbidden, "insufficient role")
		return
	}
	c.JSON(http.StatusOK, gin.H{"inspection": insp})
}

type inspectionItemRequest struct {
	Day               int    `json:"day"`
	ItemNo            int    `json:"item_no"`
	Description       string `json:"description"`
	Status            string `json:"status"`
	Comment           string `json:"comment"`
	ResolutionComment string `json:"resolution_comment"`
}

type inspectionRequest struct {
	InspectionID uint                    `json:"inspection_id"` // set when continuing a draft
	VehicleID    uint                    `json:"vehicle_id" binding:"required"`
	WeekEnding   string                  `json:"week_ending" binding:"required"`
	Mileage      int64                   `json:"mileage"`
	Status       string                  `json:"status"`
	Signature    string                  `json:"signature"`
	Items        []inspectionItemRequest `json:"items"`
}

// SaveInspection stores a draft or submits a weekly inspection. Submission
// triggers defect-task generation and resolution matching; both are
// best-effort and never fail the save itself. Saves that die on
// connectivity are diverted to the offline queue.
func SaveInspection(c *gin.Context) {
	var req inspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "vehicle_id and week_ending are required")
		return
	}

	weekEnding, err := time.Parse(weekEndingLayout, req.WeekEnding)
	if err != nil {
		fail(c, http.StatusBadRequest, "week_ending must be YYYY-MM-DD")
		return
	}
	if err := inspection.ValidateWeekEnding(weekEnding); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := inspection.ValidateMileage(req.Mileage); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	status := models.InspectionStatus(req.Status)
	if status == "" {
		status = models.InspectionSubmitted
	}
	if status != models.InspectionDraft && status != models.InspectionSubmitted {
		fail(c, http.StatusBadRequest, "status must be draft or submitted")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, req.VehicleID).Error; err != nil {
		fail(c, http.StatusNotFound, "vehicle not found")
		return
	}
	if vehicle.Archived {
		fail(c, http.StatusBadRequest, "vehicle is archived")
		return
	}

	identity, _ := currentIdentity(c)

	insp := models.Inspection{
		VehicleID:  vehicle.ID,
		EmployeeID: identity.UserID,
		WeekEnding: weekEnding,
		Mileage:    req.Mileage,
		Status:     status,
		Signature:  req.Signature,
	}
	for _, it := range req.Items {
		insp.Items = append(insp.Items, models.InspectionItem{
			Day:               it.Day,
			ItemNo:            it.ItemNo,
			Description:       strings.TrimSpace(it.Description),
			Status:            models.ItemStatus(it.Status),
			Comment:           strings.TrimSpace(it.Comment),
			ResolutionComment: strings.TrimSpace(it.ResolutionComment),
		})
	}

	carried := carriedDefectsFor(vehicle.ID, weekEnding)
	if err := inspection.ValidateItems(insp.Items, carried); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// pre-check before any write; re-run inside the save transaction
	existing := findExisting(database.DB, vehicle.ID, weekEnding)
	if dupErr := inspection.CheckDuplicate(existing, req.InspectionID); dupErr != nil {
		fail(c, http.StatusConflict, dupErr.Error())
		return
	}

	if err := saveInspection(&insp, req.InspectionID); err != nil {
		var dup *inspection.DuplicateError
		if errors.As(err, &dup) {
			fail(c, http.StatusConflict, dup.Error())
			return
		}
		if offline.IsConnectivityError(err) {
			sub := offlineQueue.Enqueue(insp)
			c.JSON(http.StatusAccepted, gin.H{
				"queued":    true,
				"queue_id":  sub.ID,
				"message":   "connection unavailable, inspection queued for replay",
				"queue_len": offlineQueue.Len(),
			})
			return
		}
		failInternal(c, "inspection_save", err)
		return
	}

	resp := gin.H{"inspection": insp}
	if status == models.InspectionSubmitted {
		if warn := submitSideEffects(&insp, vehicle.Registration, carried, identity.UserID); warn != "" {
			resp["warning"] = warn
		}
	}
	c.JSON(http.StatusCreated, resp)
}

// saveInspection writes the inspection and its item batch in one
// transaction, re-checking for a duplicate right before the insert to close
// the race window between the user's last edit and submission. Continuing
// a draft replaces its item batch.
func saveInspection(insp *models.Inspection, continuingID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		existing := findExisting(tx, insp.VehicleID, insp.WeekEnding)
		if err := inspection.CheckDuplicate(existing, continuingID); err != nil {
			return err
		}

		if continuingID != 0 {
			var draft models.Inspection
			if err := tx.First(&draft, continuingID).Error; err != nil {
				return fmt.Errorf("draft not found: %w", err)
			}
			if draft.Status != models.InspectionDraft {
				return &inspection.DuplicateError{InspectionID: draft.ID, Status: draft.Status}
			}
			if err := tx.Where("inspection_id = ?", draft.ID).Delete(&models.InspectionItem{}).Error; err != nil {
				return err
			}
			// keep the draft row, replace everything else
			insp.ID = draft.ID
			insp.CreatedAt = draft.CreatedAt
		}

		return tx.Save(insp).Error
	})
}

func findExisting(db *gorm.DB, vehicleID uint, weekEnding time.Time) *models.Inspection {
	var existing models.Inspection
	if err := db.
		Where("vehicle_id = ? AND week_ending = ?", vehicleID, weekEnding).
		First(&existing).Error; err != nil {
		return nil
	}
	return &existing
}

// carriedDefectsFor loads the attention items of the vehicle's most recent
// prior submitted inspection.
func carriedDefectsFor(vehicleID uint, before time.Time) map[inspection.ItemKey]bool {
	var prev models.Inspection
	err := database.DB.
		Where("vehicle_id = ? AND week_ending < ? AND status = ?",
			vehicleID, before, models.InspectionSubmitted).
		Order("week_ending desc").
		Preload("Items").
		First(&prev).Error
	if err != nil {
		return nil
	}
	return inspection.CarriedDefects(prev.Items)
}

// submitSideEffects runs the post-submission steps: one pending task per
// distinct defect, and completion of open tasks whose defect this week's
// checklist resolves. Failures are reported as warnings; the inspection is
// already saved.
func submitSideEffects(insp *models.Inspection, vehicleReg string, carried map[inspection.ItemKey]bool, userID uint) string {
	var warnings []string

	tasks := inspection.GenerateTasks(insp, vehicleReg, insp.Items)
	if len(tasks) > 0 {
		if err := database.DB.Create(&tasks).Error; err != nil {
			database.ReportWarning(userID, "inspection_defect_tasks", err)
			warnings = append(warnings, fmt.Sprintf("inspection saved, but defect task creation failed: %v", err))
		}
	}

	for key, comment := range inspection.Resolutions(insp.Items, carried) {
		if err := completeMatchingTask(insp.VehicleID, key, comment, userID); err != nil {
			database.ReportWarning(userID, "inspection_resolution", err)
			warnings = append(warnings, fmt.Sprintf("could not close the open task for item %d: %v", key.No, err))
		}
	}

	return strings.Join(warnings, "; ")
}

// completeMatchingTask finds the open inspection-derived task for the same
// (item number, description) and completes it with the resolution comment.
// Matching is by the composite text key, so a renamed checklist item will
// simply not match.
func completeMatchingTask(vehicleID uint, key inspection.ItemKey, comment string, userID uint) error {
	var task models.WorkshopTask
	err := database.DB.
		Where("vehicle_id = ? AND source = ? AND item_no = ? AND item_description = ? AND status IN ?",
			vehicleID, models.SourceInspection, key.No, key.Description,
			[]models.TaskStatus{models.TaskPending, models.TaskLogged}).
		Order("created_at asc").
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // nothing open for this defect
	}
	if err != nil {
		return err
	}

	events, err := workshop.MarkComplete(&task, comment, "Cleared on the following weekly inspection", userID, time.Now())
	if err != nil {
		return err
	}
	return persistTransition(&task, events)
}
