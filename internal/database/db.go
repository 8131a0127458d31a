package database

import (
	"log"
	"os"
	"time"

	"fleetworks/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.VehicleArchive{},
		&models.Category{},
		&models.Subcategory{},
		&models.WorkshopTask{},
		&models.TaskEvent{},
		&models.TaskComment{},
		&models.Inspection{},
		&models.InspectionItem{},
		&models.Timesheet{},
		&models.TimesheetEntry{},
		&models.Message{},
		&models.MaintenanceRecord{},
		&models.ErrorReport{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultSuperadmin()
	seedDefaultUsers()
}

// superadmin only from code/config
func createDefaultSuperadmin() {
	username := os.Getenv("SUPERADMIN_USERNAME")
	if username == "" {
		username = "super@fleet.local"
	}
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		password = "Super123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleSuperadmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check superadmin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default superadmin password: %v", err)
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Superadmin",
		Role:         models.RoleSuperadmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default superadmin: %v", err)
		return
	}

	log.Printf("created default superadmin user: %s (password: %s)", username, password)
}

// a few demo accounts (manager and employee)
func seedDefaultUsers() {
	type seedUser struct {
		Username string
		Password string
		FullName string
		Role     models.UserRole
	}

	users := []seedUser{
		{
			Username: "manager@fleet.local",
			Password: "Manager123!",
			FullName: "Demo Manager",
			Role:     models.RoleManager,
		},
		{
			Username: "driver@fleet.local",
			Password: "Driver123!",
			FullName: "Demo Driver",
			Role:     models.RoleEmployee,
		},
	}

	for _, u := range users {
		var count int64
		if err := DB.Model(&models.User{}).
			Where("username = ?", u.Username).
			Count(&count).Error; err != nil {
			log.Printf("failed to check seed user %s: %v", u.Username, err)
			continue
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to hash password for %s: %v", u.Username, err)
			continue
		}

		user := models.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			FullName:     u.FullName,
			Role:         u.Role,
		}

		if err := DB.Create(&user).Error; err != nil {
			log.Printf("failed to create seed user %s: %v", u.Username, err)
			continue
		}

		log.Printf("created seed user: %s (role=%s, password=%s)", u.Username, u.Role, u.Password)
	}
}
