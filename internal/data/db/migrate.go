package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/ShaikhHussain06/Skill-sculptor/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Roadmap{},
		&types.Dashboard{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	// Listing by owner is always newest first.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_roadmap_user_created ON roadmap (user_id, created_at DESC)`).Error; err != nil {
		return fmt.Errorf("create roadmap index: %w", err)
	}
	return nil
}
