package main

import (
	"log"
	"os"
	"time"

	"errortrack-be/internal/model"
	"errortrack-be/internal/service"
	"errortrack-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Seeding ErrorTrack accounts")

	seedSystemAccount(db)
	seedAdminAccount(db)

	color.Green("✅ Seeding finished")
}

// seedSystemAccount creates the passwordless owner of auto-provisioned
// applications.
func seedSystemAccount(db *gorm.DB) {
	color.Yellow("\n1. System account")

	var existing model.User
	err := db.Where("email = ?", service.SystemUserEmail).First(&existing).Error
	if err == nil {
		color.Green("Already present: %s", service.SystemUserEmail)
		return
	}
	if err != gorm.ErrRecordNotFound {
		color.Red("Lookup failed: %v", err)
		return
	}

	user := model.User{
		Id:        uuid.New(),
		Email:     service.SystemUserEmail,
		FullName:  "System",
		Role:      "system",
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		color.Red("Create failed: %v", err)
		return
	}
	color.Green("Created: %s", service.SystemUserEmail)
}

func seedAdminAccount(db *gorm.DB) {
	color.Yellow("\n2. Admin account")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@errortrack.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		color.Green("Already present: %s", email)
		return
	}
	if err != gorm.ErrRecordNotFound {
		color.Red("Lookup failed: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Hash failed: %v", err)
		return
	}
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Administrator",
		Role:         "admin",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		color.Red("Create failed: %v", err)
		return
	}
	color.Green("Created: %s (password from SEED_ADMIN_PASSWORD)", email)
}
