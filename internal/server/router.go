package server

import (
	"net/http"

	"fleetworks/internal/config"
	"fleetworks/internal/handlers"
	"fleetworks/internal/middleware"
	"fleetworks/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("fleet_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)

	// maintenance collaborator endpoint, called server-to-server
	r.POST("/api/maintenance/by-vehicle/:vehicleId", handlers.UpdateMaintenanceByVehicle)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())

	// USERS
	api.POST("/users",
		middleware.RequireRole(models.RoleAdmin),
		handlers.CreateUser,
	)
	api.POST("/viewas",
		middleware.RequireRole(models.RoleSuperadmin),
		handlers.SetViewAs,
	)

	// FLEET
	api.GET("/vehicles", handlers.ListVehicles)
	api.GET("/vehicles/:id", handlers.GetVehicle)
	api.POST("/vehicles",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.CreateVehicle,
	)
	api.PUT("/vehicles/:id",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.UpdateVehicle,
	)
	api.POST("/vehicles/:id/archive",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.ArchiveVehicle,
	)

	// WORKSHOP TAXONOMY
	api.GET("/categories", handlers.ListCategories)
	api.POST("/categories",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.CreateCategory,
	)
	api.POST("/subcategories",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.CreateSubcategory,
	)
	api.DELETE("/subcategories/:id",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.DeleteSubcategory,
	)

	// WORKSHOP TASKS
	api.GET("/tasks", handlers.ListTasks)
	api.GET("/tasks/:id", handlers.GetTask)
	api.POST("/tasks", handlers.CreateTask)
	api.DELETE("/tasks/:id",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.DeleteTask,
	)

	// status transitions (workshop side: admin + manager)
	transitions := api.Group("/tasks/:id")
	transitions.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
	transitions.POST("/progress", handlers.MarkTaskInProgress)
	transitions.POST("/hold", handlers.MarkTaskOnHold)
	transitions.POST("/resume", handlers.ResumeTask)
	transitions.POST("/complete", handlers.CompleteTask)
	transitions.POST("/undo", handlers.UndoTask)

	// comment timeline (any authenticated user; author-only edits)
	api.POST("/tasks/:id/comments", handlers.CreateTaskComment)
	api.PUT("/tasks/:id/comments/:comment_id", handlers.UpdateTaskComment)
	api.DELETE("/tasks/:id/comments/:comment_id", handlers.DeleteTaskComment)

	// INSPECTIONS
	api.GET("/inspections", handlers.ListInspections)
	api.GET("/inspections/check", handlers.CheckInspectionDuplicate)
	api.GET("/inspections/:id", handlers.GetInspection)
	api.POST("/inspections", handlers.SaveInspection)

	// offline replay queue
	api.GET("/offline", handlers.OfflineStatus)
	api.POST("/offline/replay", handlers.ReplayOffline)

	// TIMESHEETS
	api.GET("/timesheets", handlers.ListTimesheets)
	api.POST("/timesheets", handlers.SaveTimesheet)
	api.POST("/timesheets/:id/approve",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.ApproveTimesheet,
	)
	api.POST("/timesheets/:id/reject",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.RejectTimesheet,
	)

	// MESSAGES
	api.GET("/messages", handlers.ListMessages)
	api.POST("/messages", handlers.SendMessage)
	api.POST("/messages/:id/read", handlers.MarkMessageRead)

	// MAINTENANCE
	api.GET("/maintenance/by-vehicle/:vehicleId", handlers.GetMaintenanceByVehicle)
	api.DELETE("/maintenance/deleted/:archiveId",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		handlers.DeleteArchivedVehicle,
	)

	// ERROR REPORTS
	api.GET("/errors",
		middleware.RequireRole(models.RoleAdmin),
		handlers.ListErrorReports,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
