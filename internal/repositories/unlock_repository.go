package repositories

import (
	"context"
	"errors"
	"time"

	"weijob_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrShareRecordNotFound = errors.New("share record not found")

// UnlockRepository is the durable ledger of "user U unlocked day D"
// facts. It records and answers membership queries, nothing more; the
// visibility rules live in the service layer.
type UnlockRepository interface {
	// IsUnlocked reports whether a record exists for the exact pair.
	// Absence is not an error: unknown users and days yield false, nil.
	IsUnlocked(ctx context.Context, db *gorm.DB, userID, day string) (bool, error)

	// RecordUnlock persists the record, or returns the existing one when
	// the (userID, day) pair is already unlocked. Safe under concurrent
	// calls for the same key: the unique index on (user_id, unlock_day)
	// collapses racing inserts, there is no read-then-write window.
	RecordUnlock(ctx context.Context, db *gorm.DB, rec *models.ShareRecord) (*models.ShareRecord, error)

	// FindByUserAndDay returns the record or ErrShareRecordNotFound.
	FindByUserAndDay(ctx context.Context, db *gorm.DB, userID, day string) (*models.ShareRecord, error)

	// ListByUser returns the user's unlock history, newest first.
	ListByUser(ctx context.Context, db *gorm.DB, userID string, limit int) ([]models.ShareRecord, error)

	// PurgeExpired deletes records created before the cutoff and returns
	// the removed records, so callers can invalidate anything derived
	// from them. Housekeeping only; gating of today-published jobs never
	// depends on the ledger.
	PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Time) ([]models.ShareRecord, error)
}

type UnlockRepositoryImpl struct{}

func NewUnlockRepository() UnlockRepository {
	return &UnlockRepositoryImpl{}
}

func (r *UnlockRepositoryImpl) IsUnlocked(ctx context.Context, db *gorm.DB, userID, day string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.ShareRecord{}).
		Where("user_id = ? AND unlock_day = ?", userID, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UnlockRepositoryImpl) RecordUnlock(ctx context.Context, db *gorm.DB, rec *models.ShareRecord) (*models.ShareRecord, error) {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "unlock_day"}},
		DoNothing: true,
	}).Create(rec)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Lost the race or already unlocked: return the winning record.
		return r.FindByUserAndDay(ctx, db, rec.UserID, rec.UnlockDay)
	}
	return rec, nil
}

func (r *UnlockRepositoryImpl) FindByUserAndDay(ctx context.Context, db *gorm.DB, userID, day string) (*models.ShareRecord, error) {
	var rec models.ShareRecord
	err := db.WithContext(ctx).
		First(&rec, "user_id = ? AND unlock_day = ?", userID, day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *UnlockRepositoryImpl) ListByUser(ctx context.Context, db *gorm.DB, userID string, limit int) ([]models.ShareRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var records []models.ShareRecord
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *UnlockRepositoryImpl) PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Time) ([]models.ShareRecord, error) {
	var purged []models.ShareRecord
	err := db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{
			{Name: "user_id"}, {Name: "unlock_day"},
		}}).
		Where("created_at < ?", olderThan).
		Delete(&purged).Error
	return purged, err
}
