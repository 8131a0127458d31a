package identity

import (
	"testing"

	"fleetworks/internal/models"

	"github.com/stretchr/testify/assert"
)

func user(id uint, role models.UserRole) models.User {
	u := models.User{Role: role}
	u.ID = id
	return u
}

func TestResolve_SuperadminViewAs(t *testing.T) {
	id := Resolve(user(1, models.RoleSuperadmin), models.RoleEmployee)

	assert.True(t, id.ViewingAs)
	assert.Equal(t, models.RoleEmployee, id.Role)
	assert.Equal(t, models.RoleSuperadmin, id.ActualRole)
}

func TestResolve_NonSuperadminCannotViewAs(t *testing.T) {
	id := Resolve(user(2, models.RoleEmployee), models.RoleAdmin)

	assert.False(t, id.ViewingAs)
	assert.Equal(t, models.RoleEmployee, id.Role)
}

func TestResolve_IgnoresInvalidRole(t *testing.T) {
	id := Resolve(user(1, models.RoleSuperadmin), models.UserRole("wizard"))

	assert.False(t, id.ViewingAs)
	assert.Equal(t, models.RoleSuperadmin, id.Role)
}

func TestCan(t *testing.T) {
	super := Resolve(user(1, models.RoleSuperadmin), "")
	assert.True(t, super.Can(models.RoleAdmin))
	assert.True(t, super.Can(models.RoleManager, models.RoleAdmin))

	viewing := Resolve(user(1, models.RoleSuperadmin), models.RoleEmployee)
	assert.False(t, viewing.Can(models.RoleAdmin), "view-as drops superadmin powers")
	assert.True(t, viewing.Can(models.RoleEmployee))

	manager := Resolve(user(3, models.RoleManager), "")
	assert.True(t, manager.Can(models.RoleAdmin, models.RoleManager))
	assert.False(t, manager.Can(models.RoleAdmin))
}
