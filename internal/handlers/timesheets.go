package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetworks/internal/database"
	"fleetworks/internal/inspection"
	"fleetworks/internal/models"
	"fleetworks/internal/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListTimesheets(c *gin.Context) {
	identity, _ := currentIdentity(c)

	dbq := database.DB.Preload("Entries").Order("week_ending desc")
	if !identity.Can(models.RoleAdmin, models.RoleManager) {
		dbq = dbq.Where("employee_id = ?", identity.UserID)
	}
	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}

	var sheets []models.Timesheet
	if err := dbq.Find(&sheets).Error; err != nil {
		failInternal(c, "timesheet_list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timesheets": sheets})
}

type timesheetEntryRequest struct {
	Day   int     `json:"day"`
	Hours float64 `json:"hours"`
	Note  string  `json:"note"`
}

type timesheetRequest struct {
	WeekEnding string                  `json:"week_ending" binding:"required"`
	Status     string                  `json:"status"`
	Entries    []timesheetEntryRequest `json:"entries"`
}

// SaveTimesheet stores a draft or submits the week's hours. One timesheet
// per employee per week; saving again replaces the draft.
func SaveTimesheet(c *gin.Context) {
	var req timesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "week_ending is required")
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

	status := models.TimesheetStatus(req.Status)
	if status == "" {
		status = models.TimesheetSubmitted
	}
	if status != models.TimesheetDraft && status != models.TimesheetSubmitted {
		fail(c, http.StatusBadRequest, "status must be draft or submitted")
		return
	}

	for _, e := range req.Entries {
		if e.Day < 1 || e.Day > 7 {
			fail(c, http.StatusBadRequest, "entry day must be between 1 and 7")
			return
		}
		if e.Hours < 0 || e.Hours > 24 {
			fail(c, http.StatusBadRequest, "entry hours must be between 0 and 24")
			return
		}
	}

	identity, _ := currentIdentity(c)

	sheet := models.Timesheet{
		EmployeeID: identity.UserID,
		WeekEnding: weekEnding,
		Status:     status,
	}
	for _, e := range req.Entries {
		sheet.Entries = append(sheet.Entries, models.TimesheetEntry{
			Day:   e.Day,
			Hours: e.Hours,
			Note:  strings.TrimSpace(e.Note),
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Timesheet
		findErr := tx.Where("employee_id = ? AND week_ending = ?", identity.UserID, weekEnding).
			First(&existing).Error
		if findErr == nil {
			if existing.Status == models.TimesheetApproved {
				return gorm.ErrInvalidData
			}
			if err := tx.Where("timesheet_id = ?", existing.ID).Delete(&models.TimesheetEntry{}).Error; err != nil {
				return err
			}
			sheet.ID = existing.ID
			sheet.CreatedAt = existing.CreatedAt
		}
		return tx.Save(&sheet).Error
	})
	if err == gorm.ErrInvalidData {
		fail(c, http.StatusBadRequest, "an approved timesheet cannot be changed")
		return
	}
	if err != nil {
		failInternal(c, "timesheet_save", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"timesheet": sheet})
}

type timesheetDecisionRequest struct {
	Comment string `json:"comment"`
}

func ApproveTimesheet(c *gin.Context) {
	decideTimesheet(c, models.TimesheetApproved)
}

func RejectTimesheet(c *gin.Context) {
	decideTimesheet(c, models.TimesheetRejected)
}

func decideTimesheet(c *gin.Context, decision models.TimesheetStatus) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid timesheet ID")
		return
	}

	var sheet models.Timesheet
	if err := database.DB.First(&sheet, id).Error; err != nil {
		fail(c, http.StatusNotFound, "timesheet not found")
		return
	}
	if sheet.Status != models.TimesheetSubmitted {
		fail(c, http.StatusBadRequest, "only submitted timesheets can be decided")
		return
	}

	var req timesheetDecisionRequest
	_ = c.ShouldBindJSON(&req)
	comment := strings.TrimSpace(req.Comment)
	if decision == models.TimesheetRejected && comment == "" {
		fail(c, http.StatusBadRequest, "a comment is required when rejecting")
		return
	}

	identity, _ := currentIdentity(c)

	now := time.Now()
	sheet.Status = decision
	sheet.DecisionComment = comment
	sheet.DecidedByID = identity.UserID
	sheet.DecidedAt = &now

	if err := database.DB.Save(&sheet).Error; err != nil {
		failInternal(c, "timesheet_decide", err)
		return
	}

	verb := "approved"
	if decision == models.TimesheetRejected {
		verb = "rejected"
	}
	notify.Send(sheet.EmployeeID, "Your timesheet for week ending "+
		sheet.WeekEnding.Format(weekEndingLayout)+" was "+verb+".")

	c.JSON(http.StatusOK, gin.H{"timesheet": sheet})
}
