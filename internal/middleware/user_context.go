package middleware

import (
	"fleetworks/internal/database"
	"fleetworks/internal/identity"
	"fleetworks/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// InjectUser loads the session user and resolves the effective identity
// (including any superadmin view-as role) once per request.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := database.DB.First(&user, uid).Error; err == nil {
					viewAs, _ := sess.Get("view_as_role").(string)
					c.Set("CurrentUser", user)
					c.Set("Identity", identity.Resolve(user, models.UserRole(viewAs)))
				}
			}
		}

		c.Next()
	}
}
