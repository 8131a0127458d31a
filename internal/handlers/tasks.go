package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetworks/internal/database"
	"fleetworks/internal/maintenance"
	"fleetworks/internal/models"
	"fleetworks/internal/notify"
	"fleetworks/internal/workshop"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListTasks(c *gin.Context) {
	dbq := database.DB.Preload("Vehicle").Order("created_at desc")

	if v := c.Query("vehicle_id"); v != "" {
		if vid, err := strconv.Atoi(v); err == nil && vid > 0 {
			dbq = dbq.Where("vehicle_id = ?", vid)
		}
	}
	if s := c.Query("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if src := c.Query("source"); src != "" {
		dbq = dbq.Where("source = ?", src)
	}
	if cat := c.Query("category_id"); cat != "" {
		if cid, err := strconv.Atoi(cat); err == nil && cid > 0 {
			dbq = dbq.Where("category_id = ?", cid)
		}
	}

	var tasks []models.WorkshopTask
	if err := dbq.Find(&tasks).Error; err != nil {
		failInternal(c, "task_list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func GetTask(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	if err := database.DB.
		Preload("Vehicle").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc").Preload("Author")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc").Preload("Author")
		}).
		First(&task, task.ID).Error; err != nil {
		failInternal(c, "task_get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

type createTaskRequest struct {
	VehicleID     uint   `json:"vehicle_id" binding:"required"`
	CategoryID    uint   `json:"category_id" binding:"required"`
	SubcategoryID uint   `json:"subcategory_id"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
}

func CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "vehicle_id, category_id and title are required")
		return
	}

	title := strings.TrimSpace(req.Title)
	if len(title) < 3 {
		fail(c, http.StatusBadRequest, "title must be at least 3 characters")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, req.VehicleID).Error; err != nil {
		fail(c, http.StatusNotFound, "vehicle not found")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		fail(c, http.StatusNotFound, "category not found")
		return
	}

	if req.SubcategoryID != 0 {
		var sub models.Subcategory
		if err := database.DB.
			Where("id = ? AND category_id = ?", req.SubcategoryID, category.ID).
			First(&sub).Error; err != nil {
			fail(c, http.StatusBadRequest, "subcategory does not belong to the category")
			return
		}
	}

	identity, _ := currentIdentity(c)

	task := models.WorkshopTask{
		Source:        models.SourceManual,
		VehicleID:     vehicle.ID,
		CategoryID:    category.ID,
		SubcategoryID: req.SubcategoryID,
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		Status:        models.TaskPending,
		CreatedByID:   identity.UserID,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		failInternal(c, "task_create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// DeleteTask removes a manually created, non-completed task. Inspection-
// derived tasks are never deletable through this route.
func DeleteTask(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	if !workshop.Deletable(&task) {
		fail(c, http.StatusBadRequest, "only manually created, non-completed tasks can be deleted")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		failInternal(c, "task_delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

type transitionRequest struct {
	Comment string `json:"comment"`
}

func MarkTaskInProgress(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	var req transitionRequest
	_ = c.ShouldBindJSON(&req)

	identity, _ := currentIdentity(c)

	ev, err := workshop.MarkInProgress(&task, req.Comment, identity.UserID, time.Now())
	if err != nil {
		failTransition(c, err)
		return
	}
	if err := persistTransition(&task, []models.TaskEvent{ev}); err != nil {
		failInternal(c, "task_progress", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func MarkTaskOnHold(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	var req transitionRequest
	_ = c.ShouldBindJSON(&req)

	identity, _ := currentIdentity(c)

	ev, err := workshop.MarkOnHold(&task, req.Comment, identity.UserID, time.Now())
	if err != nil {
		failTransition(c, err)
		return
	}
	if err := persistTransition(&task, []models.TaskEvent{ev}); err != nil {
		failInternal(c, "task_hold", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func ResumeTask(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	var req transitionRequest
	_ = c.ShouldBindJSON(&req)

	identity, _ := currentIdentity(c)

	ev, err := workshop.Resume(&task, req.Comment, identity.UserID, time.Now())
	if err != nil {
		failTransition(c, err)
		return
	}
	if err := persistTransition(&task, []models.TaskEvent{ev}); err != nil {
		failInternal(c, "task_resume", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

type completeTaskRequest struct {
	Comment             string     `json:"comment"`
	IntermediateComment string     `json:"intermediate_comment"`
	ServicedAt          *time.Time `json:"serviced_at"`
	NextServiceDue      *time.Time `json:"next_service_due"`
	Mileage             *int64     `json:"mileage"`
}

func CompleteTask(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	var req completeTaskRequest
	_ = c.ShouldBindJSON(&req)

	identity, _ := currentIdentity(c)

	events, err := workshop.MarkComplete(&task, req.Comment, req.IntermediateComment, identity.UserID, time.Now())
	if err != nil {
		failTransition(c, err)
		return
	}
	if err := persistTransition(&task, events); err != nil {
		failInternal(c, "task_complete", err)
		return
	}

	resp := gin.H{"task": task}

	// maintenance update is best-effort: a failure is a warning on the
	// response, never a rollback of the completion
	upd := maintenanceUpdate(req)
	if !upd.Empty() {
		if err := maintClient.UpdateByVehicle(c.Request.Context(), task.VehicleID, upd); err != nil {
			database.ReportWarning(identity.UserID, "task_complete_maintenance", err)
			resp["warning"] = fmt.Sprintf("task completed, but the maintenance update failed: %v", err)
		}
	}

	if task.CreatedByID != 0 && task.CreatedByID != identity.UserID {
		notify.Send(task.CreatedByID, fmt.Sprintf("Task %q has been completed.", task.Title))
	}

	c.JSON(http.StatusOK, resp)
}

func maintenanceUpdate(req completeTaskRequest) (upd maintenance.Update) {
	upd.ServicedAt = req.ServicedAt
	upd.NextServiceDue = req.NextServiceDue
	upd.Mileage = req.Mileage
	if upd.ServicedAt != nil || upd.NextServiceDue != nil || upd.Mileage != nil {
		upd.Comment = strings.TrimSpace(req.Comment)
	}
	return upd
}

func UndoTask(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	var history []models.TaskEvent
	if err := database.DB.
		Where("task_id = ?", task.ID).
		Order("created_at asc, id asc").
		Find(&history).Error; err != nil {
		failInternal(c, "task_undo", err)
		return
	}

	identity, _ := currentIdentity(c)

	ev, err := workshop.Undo(&task, history, identity.UserID, time.Now())
	if err != nil {
		failTransition(c, err)
		return
	}
	if err := persistTransition(&task, []models.TaskEvent{ev}); err != nil {
		failInternal(c, "task_undo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func loadTask(c *gin.Context) (models.WorkshopTask, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid task ID")
		return models.WorkshopTask{}, false
	}

	var task models.WorkshopTask
	if err := database.DB.First(&task, id).Error; err != nil {
		fail(c, http.StatusNotFound, "task not found")
		return models.WorkshopTask{}, false
	}
	return task, true
}

// persistTransition writes the mutated task and its new history events in
// one transaction so the log and the status fields cannot drift apart.
func persistTransition(task *models.WorkshopTask, events []models.TaskEvent) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		for i := range events {
			if err := tx.Create(&events[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func failTransition(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workshop.ErrCommentRequired),
		errors.Is(err, workshop.ErrCommentTooLong),
		errors.Is(err, workshop.ErrInvalidTransition):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		failInternal(c, "task_transition", err)
	}
}
