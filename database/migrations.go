package database

import (
	"log/slog"

	"vibe-todo/vibetodo/models"

	"gorm.io/gorm"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	slog.Debug("running database migrations")

	err := db.AutoMigrate(
		&models.List{},
		&models.Task{},
		&models.Subtask{},
		&models.MyDayTask{},
	)

	if err != nil {
		slog.Error("migration failed", "error", err)
		return err
	}

	return nil
}
