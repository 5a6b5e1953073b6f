package config

import (
	"log"

	"auto-market/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB connects to Postgres and migrates all domain models.
func InitDB() *gorm.DB {
	db, err := gorm.Open(postgres.Open(DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Make{},
		&models.Model{},
		&models.Listing{},
		&models.ListingImage{},
		&models.ModerationLog{},
		&models.Favorite{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	return db
}
