package repositories

import (
	"context"
	"errors"

	"weijob_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	City       string
	Category   string
	Keyword    string
	PublishDay string
	Status     models.JobStatus
	Page       int
	PageSize   int
}

type JobRepository interface {
	Create(ctx context.Context, db *gorm.DB, job *models.Job) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Job, error)
	Search(ctx context.Context, db *gorm.DB, filter JobFilter) ([]models.Job, int64, error)
	ListByPublisher(ctx context.Context, db *gorm.DB, publisherID string) ([]models.Job, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id string, status models.JobStatus) error
	IncrementViews(ctx context.Context, db *gorm.DB, id string) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, db *gorm.DB, job *models.Job) error {
	return db.WithContext(ctx).Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Search(ctx context.Context, db *gorm.DB, filter JobFilter) ([]models.Job, int64, error) {
	query := db.WithContext(ctx).Model(&models.Job{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PublishDay != "" {
		query = query.Where("publish_day = ?", filter.PublishDay)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("title ILIKE ? OR company ILIKE ?", kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	var jobs []models.Job
	err := query.
		Order("publish_day DESC, created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) ListByPublisher(ctx context.Context, db *gorm.DB, publisherID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.WithContext(ctx).
		Where("publisher_id = ?", publisherID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) UpdateStatus(ctx context.Context, db *gorm.DB, id string, status models.JobStatus) error {
	result := db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementViews(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
