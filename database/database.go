package database

import (
	"log"

	"pedagoia-backend/internal/domain/billing"
	"pedagoia-backend/internal/domain/content"
	"pedagoia-backend/internal/domain/subscriptions"
	"pedagoia-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB(dsn string) {
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	// Required for UUID generation on generated image records
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// accounts
		&users.User{},
		&users.Profile{},
		&users.VerificationToken{},

		// entitlements
		&subscriptions.UserSubscription{},
		&billing.Payment{},

		// generated content
		&content.GeneratedContent{},
		&content.GeneratedImage{},
		&content.ImageGenerationError{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}
}
