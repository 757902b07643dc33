package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"github.com/peakspace-dev/peakspace/db"
	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds or updates an admin user. There is no open registration endpoint.
func main() {
	name := flag.String("name", "", "admin display name")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *name == "" || *email == "" || len(*password) < 8 {
		log.Fatal("Usage: createadmin -name NAME -email EMAIL -password PASSWORD (min 8 chars)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectDatabase(cfg.Database.URL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(*email))

	var admin models.AdminUser
	err = db.DB.Where("email = ?", normalized).First(&admin).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		admin = models.AdminUser{
			Name:         *name,
			Email:        normalized,
			PasswordHash: string(hash),
		}
		if err := db.DB.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Created admin %s (%s)", admin.Name, admin.Email)
		return
	}

	if err != nil {
		log.Fatalf("Failed to look up admin: %v", err)
	}

	updates := map[string]interface{}{
		"name":          *name,
		"password_hash": string(hash),
	}
	if err := db.DB.Model(&admin).Updates(updates).Error; err != nil {
		log.Fatalf("Failed to update admin: %v", err)
	}

	log.Printf("Updated admin %s (%s)", *name, normalized)
}
