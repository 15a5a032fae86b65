package database

import (
	"log"

	"github.com/twende-org/mauzo/config"
	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/internal/utils"
)

// SeedAdmin creates the initial admin account and the business row on an
// empty database. Existing rows are left alone.
func SeedAdmin() {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count == 0 {
		email := config.AppConfig.Defaults.AdminEmail
		password := config.AppConfig.Defaults.AdminPassword
		if email == "" || password == "" {
			log.Println("Warning: no admin user exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
		} else {
			hash, err := utils.HashPassword(password)
			if err != nil {
				log.Fatalf("Failed to hash admin password: %v", err)
			}
			name := config.AppConfig.Defaults.AdminName
			if name == "" {
				name = "Administrator"
			}
			admin := models.User{
				Email:        email,
				Name:         name,
				PasswordHash: hash,
				Role:         models.RoleAdmin,
				IsActive:     true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Fatalf("Failed to seed admin user: %v", err)
			}
			log.Printf("Seeded admin user %s", email)
		}
	}

	var bizCount int64
	DB.Model(&models.Business{}).Count(&bizCount)
	if bizCount == 0 && config.AppConfig.Business.Name != "" {
		biz := models.Business{
			Name: config.AppConfig.Business.Name,
			Type: config.AppConfig.Business.Type,
		}
		if err := DB.Create(&biz).Error; err != nil {
			log.Printf("Warning: failed to seed business row: %v", err)
		}
	}
}
