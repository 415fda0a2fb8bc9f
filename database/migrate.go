package database

import (
	"log"

	"revivecare/internal/models"

	"gorm.io/gorm"
)

// Migrate creates or updates every table together with its foreign keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Doctor{},
		&models.Patient{},
		&models.ExerciseSession{},
		&models.ChatMessage{},
		&models.PatientReport{},
	)
}

func MigrateDatabase() error {
	log.Println("Running database migrations...")

	if err := Migrate(DB); err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
