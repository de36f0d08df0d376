package database

import (
	"weijob_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates all tables. The composite unique index
// on share_records (user_id, unlock_day) comes from the model tags and
// is what guarantees idempotent, race-free unlock writes.
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need the extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.ShareRecord{},
	)
}
