package repositories

import (
	"context"
	"errors"
	"time"

	"weijob_backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error)
	FindByOpenID(ctx context.Context, db *gorm.DB, openID string) (*models.User, error)
	Create(ctx context.Context, db *gorm.DB, user *models.User) error
	Update(ctx context.Context, db *gorm.DB, user *models.User) error
	UpdateLastActive(ctx context.Context, db *gorm.DB, userID string) error
	CountAll(ctx context.Context, db *gorm.DB) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByOpenID(ctx context.Context, db *gorm.DB, openID string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).First(&user, "open_id = ?", openID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and maps a unique-index violation on open_id
// to ErrUserAlreadyExists. No pre-read: under concurrent first logins
// both writers insert and the unique index decides, so the loser gets a
// classified error instead of a race window.
func (r *UserRepositoryImpl) Create(ctx context.Context, db *gorm.DB, user *models.User) error {
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// isDuplicateKey recognizes unique-constraint violations whether or not
// gorm's error translation is enabled.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepositoryImpl) Update(ctx context.Context, db *gorm.DB, user *models.User) error {
	result := db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"nickname":   user.Nickname,
		"avatar_url": user.AvatarURL,
		"city":       user.City,
		"phone":      user.Phone,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateLastActive(ctx context.Context, db *gorm.DB, userID string) error {
	now := time.Now()
	return db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_active_at", now).Error
}

func (r *UserRepositoryImpl) CountAll(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
