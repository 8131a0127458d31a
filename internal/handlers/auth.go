package handlers

import (
	"net/http"
	"strings"

	"fleetworks/internal/database"
	"fleetworks/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "username and password are required")
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		fail(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Delete("view_as_role")
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser registers a new account. Admin-only; superadmins come from
// config, never from this endpoint.
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 || len(req.Password) < 6 {
		fail(c, http.StatusBadRequest, "username or password too short")
		return
	}

	role := models.UserRole(req.Role)
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleEmployee:
	default:
		fail(c, http.StatusBadRequest, "invalid role")
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		fail(c, http.StatusBadRequest, "user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		failInternal(c, "user_create", err)
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		failInternal(c, "user_create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type viewAsRequest struct {
	Role string `json:"role"`
}

// SetViewAs lets a superadmin simulate a lower role for the rest of the
// session. An empty role clears the simulation.
func SetViewAs(c *gin.Context) {
	var req viewAsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	sess := sessions.Default(c)
	if req.Role == "" {
		sess.Delete("view_as_role")
		_ = sess.Save()
		c.JSON(http.StatusOK, gin.H{"message": "view-as cleared"})
		return
	}

	role := models.UserRole(req.Role)
	if !role.Valid() || role == models.RoleSuperadmin {
		fail(c, http.StatusBadRequest, "invalid role")
		return
	}

	sess.Set("view_as_role", string(role))
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"viewing_as": role})
}
