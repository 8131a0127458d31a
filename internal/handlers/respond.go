package handlers

import (
	"net/http"

	"fleetworks/internal/config"
	"fleetworks/internal/database"
	"fleetworks/internal/identity"
	"fleetworks/internal/maintenance"
	"fleetworks/internal/offline"

	"github.com/gin-gonic/gin"
)

// package-level collaborators, wired once at startup
var (
	maintClient  *maintenance.Client
	offlineQueue *offline.Queue
)

func Init(cfg *config.Config) {
	maintClient = maintenance.NewClient(cfg.MaintenanceBaseURL)
	offlineQueue = offline.NewQueue()
}

// currentIdentity pulls the effective identity placed by middleware.InjectUser.
func currentIdentity(c *gin.Context) (identity.EffectiveIdentity, bool) {
	idVal, ok := c.Get("Identity")
	if !ok {
		return identity.EffectiveIdentity{}, false
	}
	id, ok := idVal.(identity.EffectiveIdentity)
	return id, ok
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// failInternal reports the error centrally and answers 500 with the detail.
func failInternal(c *gin.Context, context string, err error) {
	id, _ := currentIdentity(c)
	database.ReportError(id.UserID, context, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
