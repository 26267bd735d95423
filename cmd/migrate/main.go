package main

import (
	"errors"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"notekeeper-be/internal/model"
	"notekeeper-be/pkg/database"
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

	color.Cyan("Starting GORM migration...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.Notebook{},
		&model.Note{},
		&model.NoteVersion{},
		&model.Tag{},
		&model.Shortcut{},
		&model.NotificationType{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	seedNotificationTypes(db)

	color.Green("✅ Database migration completed successfully.")
}

// seedNotificationTypes upserts the notification registry rows the
// notification worker resolves event codes against.
func seedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "NOTE_CREATED",
			DisplayName: "Note Created",
			Template:    "You created a note: \"{title}\"",
			TargetType:  "SELF",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "NOTE_UPDATED",
			DisplayName: "Note Updated",
			Template:    "You updated note: \"{title}\"",
			TargetType:  "SELF",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "NOTE_RESTORED",
			DisplayName: "Note Restored",
			Template:    "You restored an earlier version of \"{title}\"",
			TargetType:  "SELF",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "REMINDER_DUE",
			DisplayName: "Reminder Due",
			Template:    "Reminder: \"{title}\" is due",
			TargetType:  "SELF",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
	}

	for _, t := range types {
		var existing model.NotificationType
		err := db.Where("code = ?", t.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&t).Error; err != nil {
				color.Yellow("Warn: Failed to seed notification type %s: %v", t.Code, err)
			}
			continue
		}
		if err != nil {
			color.Yellow("Warn: Failed to check notification type %s: %v", t.Code, err)
			continue
		}
		existing.DisplayName = t.DisplayName
		existing.Template = t.Template
		existing.TargetType = t.TargetType
		existing.IsActive = t.IsActive
		existing.Channels = t.Channels
		if err := db.Save(&existing).Error; err != nil {
			color.Yellow("Warn: Failed to update notification type %s: %v", t.Code, err)
		}
	}
	color.Cyan("Seeded %d notification types.", len(types))
}
