package app

import (
	"errors"
	"os"

	"weijob_backend/internal/auth"
	"weijob_backend/internal/config"
	"weijob_backend/internal/logger"
	"weijob_backend/internal/models"

	"gorm.io/gorm"
)

// seedFirstAdmin creates the bootstrap admin account on an empty
// database. The admin logs in through ops tooling, not the mini-program,
// so it carries a password hash instead of a WeChat open-id.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	if err := auth.ValidatePassword(password); err != nil {
		return errors.New("ADMIN_PASSWORD too weak: " + err.Error())
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		OpenID:       "admin-bootstrap", // placeholder, admins have no WeChat identity
		Nickname:     "Administrator",
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("Seeded first admin user", "id", admin.ID)
	return nil
}
