package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"weijob_backend/internal/models"
	"weijob_backend/internal/services/dto"
	"weijob_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShareFixture(t *testing.T, jobs ...*models.Job) (ShareService, *fakeUnlockRepo, *fakeJobRepo) {
	t.Helper()
	unlockRepo := newFakeUnlockRepo()
	jobRepo := newFakeJobRepo(jobs...)
	gate := gateAt(unlockRepo, today)
	svc := NewShareService(unlockRepo, jobRepo, gate, nil)
	return svc, unlockRepo, jobRepo
}

func activeJob(id, publishDay string) *models.Job {
	job := &models.Job{PublishDay: publishDay, Status: models.JobStatusActive}
	job.ID = id
	return job
}

func TestUnlock_HistoricalJobWritesLedgerRecord(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t, activeJob("job-1", yesterday))

	resp, err := svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
		JobID:     "job-1",
		ShareType: string(models.ShareTypeWechat),
	})

	require.NoError(t, err)
	assert.True(t, resp.Unlocked)
	require.NotNil(t, resp.ShareID)
	assert.Equal(t, yesterday, resp.UnlockDate)
	assert.Equal(t, 1, unlockRepo.count())
}

func TestUnlock_TodayJobIsFreeAndWritesNothing(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t, activeJob("job-1", today))

	resp, err := svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
		JobID:     "job-1",
		ShareType: string(models.ShareTypeTimeline),
	})

	require.NoError(t, err)
	assert.True(t, resp.Unlocked)
	assert.Nil(t, resp.ShareID)
	assert.Equal(t, today, resp.UnlockDate)
	assert.Equal(t, 0, unlockRepo.count())
}

func TestUnlock_IsIdempotentForSameUserAndDay(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t, activeJob("job-1", yesterday))
	req := &dto.UnlockRequest{JobID: "job-1", ShareType: string(models.ShareTypeWechat)}

	first, err := svc.Unlock(context.Background(), nil, "user-1", req)
	require.NoError(t, err)
	second, err := svc.Unlock(context.Background(), nil, "user-1", req)
	require.NoError(t, err)

	assert.True(t, first.Unlocked)
	assert.True(t, second.Unlocked)
	require.NotNil(t, first.ShareID)
	require.NotNil(t, second.ShareID)
	assert.Equal(t, *first.ShareID, *second.ShareID)
	assert.Equal(t, 1, unlockRepo.count())
}

func TestUnlock_OpensEveryJobPublishedOnThatDay(t *testing.T) {
	svc, _, _ := newShareFixture(t,
		activeJob("job-a", yesterday),
		activeJob("job-b", yesterday),
	)

	_, err := svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
		JobID:     "job-a",
		ShareType: string(models.ShareTypeWechat),
	})
	require.NoError(t, err)

	// Sharing job A opens job B: the unlock is day-scoped.
	check, err := svc.Check(context.Background(), nil, "user-1", "job-b")
	require.NoError(t, err)
	assert.True(t, check.Unlocked)
	assert.False(t, check.NeedShare)
	assert.False(t, check.IsToday)
}

func TestUnlock_ConcurrentCallsCollapseToOneRecord(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t, activeJob("job-1", yesterday))

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)
	resps := make([]*dto.UnlockResponse, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resps[i], errs[i] = svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
				JobID:     "job-1",
				ShareType: string(models.ShareTypeWechat),
			})
		}(i)
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		require.NoError(t, errs[i])
		assert.True(t, resps[i].Unlocked)
		require.NotNil(t, resps[i].ShareID)
		assert.Equal(t, *resps[0].ShareID, *resps[i].ShareID)
	}
	assert.Equal(t, 1, unlockRepo.count())
}

func TestUnlock_UnknownJobReturnsNotFound(t *testing.T) {
	svc, _, _ := newShareFixture(t)

	_, err := svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
		JobID:     "missing",
		ShareType: string(models.ShareTypeWechat),
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestUnlock_ClosedJobIsNotUnlockable(t *testing.T) {
	job := activeJob("job-1", yesterday)
	job.Status = models.JobStatusClosed
	svc, unlockRepo, _ := newShareFixture(t, job)

	_, err := svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
		JobID:     "job-1",
		ShareType: string(models.ShareTypeWechat),
	})

	assert.ErrorIs(t, err, apperrors.ErrJobNotVisible)
	assert.Equal(t, 0, unlockRepo.count())
}

func TestUnlock_JobWithoutPublishDayIsRejected(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t, activeJob("job-1", ""))

	_, err := svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
		JobID:     "job-1",
		ShareType: string(models.ShareTypeWechat),
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
	assert.Equal(t, 0, unlockRepo.count())
}

func TestUnlock_LedgerWriteFailureSurfacesAsStorageError(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t, activeJob("job-1", yesterday))
	unlockRepo.failErr = errors.New("write timeout")

	_, err := svc.Unlock(context.Background(), nil, "user-1", &dto.UnlockRequest{
		JobID:     "job-1",
		ShareType: string(models.ShareTypeWechat),
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeStorageError, appErr.Code)
}

func TestCheck_TodayJob(t *testing.T) {
	svc, _, _ := newShareFixture(t, activeJob("job-1", today))

	resp, err := svc.Check(context.Background(), nil, "user-1", "job-1")

	require.NoError(t, err)
	assert.True(t, resp.Unlocked)
	assert.True(t, resp.IsToday)
	assert.False(t, resp.NeedShare)
}

func TestCheck_HistoricalLockedJob(t *testing.T) {
	svc, _, _ := newShareFixture(t, activeJob("job-1", yesterday))

	resp, err := svc.Check(context.Background(), nil, "user-1", "job-1")

	require.NoError(t, err)
	assert.False(t, resp.Unlocked)
	assert.False(t, resp.IsToday)
	assert.True(t, resp.NeedShare)
}

func TestHistory_ListsOwnRecordsOnly(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t)
	ctx := context.Background()
	_, err := unlockRepo.RecordUnlock(ctx, nil, &models.ShareRecord{
		UserID: "user-1", UnlockDay: yesterday, JobID: "job-1", ShareType: models.ShareTypeWechat,
	})
	require.NoError(t, err)
	_, err = unlockRepo.RecordUnlock(ctx, nil, &models.ShareRecord{
		UserID: "user-2", UnlockDay: yesterday, JobID: "job-1", ShareType: models.ShareTypeLink,
	})
	require.NoError(t, err)

	items, err := svc.History(ctx, nil, "user-1", 50)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "job-1", items[0].JobID)
	assert.Equal(t, yesterday, items[0].UnlockDay)
	assert.Equal(t, string(models.ShareTypeWechat), items[0].ShareType)
}

func TestPurgeExpired_RemovesOnlyRecordsPastRetention(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t)
	ctx := context.Background()

	_, err := unlockRepo.RecordUnlock(ctx, nil, &models.ShareRecord{
		UserID: "user-1", UnlockDay: yesterday,
	})
	require.NoError(t, err)
	stale, err := unlockRepo.RecordUnlock(ctx, nil, &models.ShareRecord{
		UserID: "user-2", UnlockDay: "2026-08-01",
	})
	require.NoError(t, err)
	stale.CreatedAt = time.Now().Add(-10 * 24 * time.Hour)

	count, err := svc.PurgeExpired(ctx, nil, 7*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, unlockRepo.count())

	// A purged day locks again until the user shares afresh.
	unlocked, err := unlockRepo.IsUnlocked(ctx, nil, "user-2", "2026-08-01")
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestPurgeExpired_PurgedDayRequiresFreshShare(t *testing.T) {
	svc, unlockRepo, _ := newShareFixture(t, activeJob("job-1", "2026-08-01"))
	ctx := context.Background()

	resp, err := svc.Unlock(ctx, nil, "user-1", &dto.UnlockRequest{
		JobID:     "job-1",
		ShareType: string(models.ShareTypeWechat),
	})
	require.NoError(t, err)
	require.True(t, resp.Unlocked)

	rec, err := unlockRepo.FindByUserAndDay(ctx, nil, "user-1", "2026-08-01")
	require.NoError(t, err)
	rec.CreatedAt = time.Now().Add(-10 * 24 * time.Hour)

	count, err := svc.PurgeExpired(ctx, nil, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The purge tells callers which pairs went away so cached positive
	// answers are dropped with them; the gate must ask for a new share.
	check, err := svc.Check(ctx, nil, "user-1", "job-1")
	require.NoError(t, err)
	assert.False(t, check.Unlocked)
	assert.True(t, check.NeedShare)
}
