package services

import (
	"context"
	"encoding/json"
	"fmt"

	"weijob_backend/internal/models"
	"weijob_backend/internal/repositories"
	"weijob_backend/internal/services/dto"
	"weijob_backend/internal/utils"
	"weijob_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService interface {
	PublishJob(ctx context.Context, db *gorm.DB, req *dto.CreateJobRequest) (*dto.JobDetail, error)
	GetJob(ctx context.Context, db *gorm.DB, jobID, requesterID string) (*dto.JobDetail, error)
	SearchJobs(ctx context.Context, db *gorm.DB, req dto.SearchJobsRequest) ([]dto.JobSummary, int64, error)
	MyJobs(ctx context.Context, db *gorm.DB, userID string) ([]dto.JobSummary, error)
	UpdateJobStatus(ctx context.Context, db *gorm.DB, jobID, requesterID string, status models.JobStatus) error
	DeleteJob(ctx context.Context, db *gorm.DB, jobID, requesterID string) error
}

type JobServiceImpl struct {
	jobRepo repositories.JobRepository
	gate    *VisibilityGate
}

func NewJobService(jobRepo repositories.JobRepository, gate *VisibilityGate) JobService {
	return &JobServiceImpl{
		jobRepo: jobRepo,
		gate:    gate,
	}
}

func (s *JobServiceImpl) PublishJob(ctx context.Context, db *gorm.DB, req *dto.CreateJobRequest) (*dto.JobDetail, error) {
	tagsJSON, err := json.Marshal(req.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}
	benefitsJSON, err := json.Marshal(req.Benefits)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal benefits: %w", err)
	}

	job := &models.Job{
		PublisherID:   req.PublisherID,
		Title:         req.Title,
		Description:   req.Description,
		Company:       req.Company,
		City:          req.City,
		District:      req.District,
		Category:      req.Category,
		SalaryMin:     req.SalaryMin,
		SalaryMax:     req.SalaryMax,
		SalaryUnit:    req.SalaryUnit,
		Tags:          datatypes.JSON(tagsJSON),
		Benefits:      datatypes.JSON(benefitsJSON),
		Contact:       req.Contact,
		ContactPerson: req.ContactPerson,
		ContactTime:   req.ContactTime,
		// Stamped once at publish time, immutable afterwards.
		PublishDay: s.gate.CurrentDay(),
		Status:     models.JobStatusActive,
	}

	if err := s.jobRepo.Create(ctx, db, job); err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	// The publisher sees their own listing unmasked.
	return s.buildJobDetail(job, Visibility{IsToday: true, IsUnlocked: true}), nil
}

func (s *JobServiceImpl) GetJob(ctx context.Context, db *gorm.DB, jobID, requesterID string) (*dto.JobDetail, error) {
	job, err := s.jobRepo.FindByID(ctx, db, jobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrStorage(err)
	}

	isOwner := requesterID != "" && requesterID == job.PublisherID
	if job.Status != models.JobStatusActive && !isOwner {
		return nil, apperrors.ErrJobNotVisible
	}

	if !isOwner {
		go s.jobRepo.IncrementViews(context.Background(), db, jobID)
	}

	if isOwner {
		return s.buildJobDetail(job, Visibility{IsToday: true, IsUnlocked: true}), nil
	}

	vis, err := s.gate.Resolve(ctx, db, job, requesterID)
	if err != nil {
		return nil, err
	}
	return s.buildJobDetail(job, vis), nil
}

func (s *JobServiceImpl) SearchJobs(ctx context.Context, db *gorm.DB, req dto.SearchJobsRequest) ([]dto.JobSummary, int64, error) {
	filter := repositories.JobFilter{
		City:       req.City,
		Category:   req.Category,
		Keyword:    req.Keyword,
		PublishDay: req.PublishDay,
		Status:     models.JobStatusActive,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	jobs, total, err := s.jobRepo.Search(ctx, db, filter)
	if err != nil {
		return nil, 0, apperrors.ErrStorage(err)
	}

	summaries := make([]dto.JobSummary, 0, len(jobs))
	for i := range jobs {
		summaries = append(summaries, s.buildJobSummary(&jobs[i]))
	}
	return summaries, total, nil
}

func (s *JobServiceImpl) MyJobs(ctx context.Context, db *gorm.DB, userID string) ([]dto.JobSummary, error) {
	jobs, err := s.jobRepo.ListByPublisher(ctx, db, userID)
	if err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	summaries := make([]dto.JobSummary, 0, len(jobs))
	for i := range jobs {
		summaries = append(summaries, s.buildJobSummary(&jobs[i]))
	}
	return summaries, nil
}

func (s *JobServiceImpl) UpdateJobStatus(ctx context.Context, db *gorm.DB, jobID, requesterID string, status models.JobStatus) error {
	job, err := s.jobRepo.FindByID(ctx, db, jobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrStorage(err)
	}
	if job.PublisherID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.jobRepo.UpdateStatus(ctx, db, jobID, status); err != nil {
		return apperrors.ErrStorage(err)
	}
	return nil
}

func (s *JobServiceImpl) DeleteJob(ctx context.Context, db *gorm.DB, jobID, requesterID string) error {
	job, err := s.jobRepo.FindByID(ctx, db, jobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrStorage(err)
	}
	if job.PublisherID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.jobRepo.Delete(ctx, db, jobID); err != nil {
		return apperrors.ErrStorage(err)
	}
	return nil
}

func (s *JobServiceImpl) buildJobSummary(job *models.Job) dto.JobSummary {
	var tags []string
	_ = json.Unmarshal(job.Tags, &tags)

	return dto.JobSummary{
		ID:         job.ID,
		Title:      job.Title,
		Company:    job.Company,
		City:       job.City,
		District:   job.District,
		Category:   job.Category,
		SalaryMin:  job.SalaryMin,
		SalaryMax:  job.SalaryMax,
		SalaryUnit: job.SalaryUnit,
		Tags:       tags,
		PublishDay: job.PublishDay,
		Views:      job.Views,
	}
}

func (s *JobServiceImpl) buildJobDetail(job *models.Job, vis Visibility) *dto.JobDetail {
	var benefits []string
	_ = json.Unmarshal(job.Benefits, &benefits)

	detail := &dto.JobDetail{
		JobSummary:        s.buildJobSummary(job),
		Description:       job.Description,
		Benefits:          benefits,
		PublisherID:       job.PublisherID,
		IsToday:           vis.IsToday,
		IsUnlocked:        vis.IsUnlocked,
		NeedShareToUnlock: vis.NeedShare,
	}

	if vis.IsUnlocked {
		detail.Contact = job.Contact
		detail.ContactPerson = job.ContactPerson
		detail.ContactTime = job.ContactTime
	} else {
		// ContactTime is gated with the rest; there is no masked preview
		// for it, so it stays empty until the gate opens.
		detail.Contact = utils.MaskPhone(job.Contact)
		detail.ContactPerson = utils.MaskName(job.ContactPerson)
		detail.ContactTime = ""
	}
	return detail
}
