package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleSuperadmin UserRole = "superadmin"
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleEmployee   UserRole = "employee"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string   `gorm:"not null" json:"-"`
	FullName     string   `gorm:"size:100" json:"full_name"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}
