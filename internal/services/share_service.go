package services

import (
	"context"
	"time"

	"weijob_backend/internal/cache"
	"weijob_backend/internal/logger"
	"weijob_backend/internal/models"
	"weijob_backend/internal/repositories"
	"weijob_backend/internal/services/dto"
	"weijob_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ShareService interface {
	// Unlock records a share-driven unlock for the job's publish day.
	// Re-unlocking an already-unlocked day succeeds with the existing
	// record; it is never a conflict.
	//
	// The share itself is client-asserted: no server-side verification
	// of a real WeChat share callback happens here. That trust gap is a
	// known product decision, kept isolated in this one call site so a
	// verification step can be inserted later.
	Unlock(ctx context.Context, db *gorm.DB, userID string, req *dto.UnlockRequest) (*dto.UnlockResponse, error)

	// Check answers the gate question for one job without side effects.
	Check(ctx context.Context, db *gorm.DB, userID, jobID string) (*dto.CheckResponse, error)

	// History lists the user's unlock records, newest first.
	History(ctx context.Context, db *gorm.DB, userID string, limit int) ([]dto.ShareHistoryItem, error)

	// PurgeExpired removes ledger records older than the retention
	// window and returns the count. Gating correctness never depends on
	// it; a purged historical day simply requires a fresh share.
	PurgeExpired(ctx context.Context, db *gorm.DB, window time.Duration) (int64, error)
}

type ShareServiceImpl struct {
	unlockRepo  repositories.UnlockRepository
	jobRepo     repositories.JobRepository
	gate        *VisibilityGate
	unlockCache *cache.UnlockCache
}

func NewShareService(
	unlockRepo repositories.UnlockRepository,
	jobRepo repositories.JobRepository,
	gate *VisibilityGate,
	unlockCache *cache.UnlockCache,
) ShareService {
	return &ShareServiceImpl{
		unlockRepo:  unlockRepo,
		jobRepo:     jobRepo,
		gate:        gate,
		unlockCache: unlockCache,
	}
}

func (s *ShareServiceImpl) Unlock(ctx context.Context, db *gorm.DB, userID string, req *dto.UnlockRequest) (*dto.UnlockResponse, error) {
	job, err := s.findVisibleJob(ctx, db, req.JobID)
	if err != nil {
		return nil, err
	}

	day := job.PublishDay
	if day == "" {
		// Malformed listing: there is no day to unlock.
		return nil, apperrors.ErrInvalidOperation("share", "Job has no publish day")
	}

	if day == s.gate.CurrentDay() {
		// Published today: free for everyone, nothing to record.
		return &dto.UnlockResponse{
			Unlocked:   true,
			ShareID:    nil,
			UnlockDate: day,
		}, nil
	}

	rec := &models.ShareRecord{
		UserID:       userID,
		UnlockDay:    day,
		JobID:        job.ID,
		ShareType:    models.ShareType(req.ShareType),
		ShareChannel: req.ShareChannel,
	}

	saved, err := s.unlockRepo.RecordUnlock(ctx, db, rec)
	if err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	s.unlockCache.SetUnlocked(ctx, userID, day)
	logger.CtxInfo(ctx, "unlock recorded",
		"job_id", job.ID,
		"unlock_day", day,
		"share_type", req.ShareType,
	)

	shareID := saved.ID
	return &dto.UnlockResponse{
		Unlocked:   true,
		ShareID:    &shareID,
		UnlockDate: day,
	}, nil
}

func (s *ShareServiceImpl) Check(ctx context.Context, db *gorm.DB, userID, jobID string) (*dto.CheckResponse, error) {
	job, err := s.findVisibleJob(ctx, db, jobID)
	if err != nil {
		return nil, err
	}

	vis, err := s.gate.Resolve(ctx, db, job, userID)
	if err != nil {
		return nil, err
	}

	return &dto.CheckResponse{
		Unlocked:  vis.IsUnlocked,
		NeedShare: vis.NeedShare,
		IsToday:   vis.IsToday,
	}, nil
}

func (s *ShareServiceImpl) History(ctx context.Context, db *gorm.DB, userID string, limit int) ([]dto.ShareHistoryItem, error) {
	records, err := s.unlockRepo.ListByUser(ctx, db, userID, limit)
	if err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	items := make([]dto.ShareHistoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.ShareHistoryItem{
			ShareID:      rec.ID,
			JobID:        rec.JobID,
			UnlockDay:    rec.UnlockDay,
			ShareType:    string(rec.ShareType),
			ShareChannel: rec.ShareChannel,
			CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

func (s *ShareServiceImpl) PurgeExpired(ctx context.Context, db *gorm.DB, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window)
	purged, err := s.unlockRepo.PurgeExpired(ctx, db, cutoff)
	if err != nil {
		return 0, apperrors.ErrStorage(err)
	}

	// Cached positive answers must not outlive their ledger rows, or a
	// purged day would stay open until the cache TTL runs out.
	for _, rec := range purged {
		s.unlockCache.Invalidate(ctx, rec.UserID, rec.UnlockDay)
	}
	return int64(len(purged)), nil
}

// findVisibleJob rejects unknown and non-listed jobs before the ledger
// is ever consulted.
func (s *ShareServiceImpl) findVisibleJob(ctx context.Context, db *gorm.DB, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, db, jobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrStorage(err)
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrJobNotVisible
	}
	return job, nil
}
