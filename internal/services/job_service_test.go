package services

import (
	"context"
	"testing"

	"weijob_backend/internal/models"
	"weijob_backend/internal/services/dto"
	"weijob_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobFixture(t *testing.T, jobs ...*models.Job) (JobService, *fakeUnlockRepo, *fakeJobRepo) {
	t.Helper()
	unlockRepo := newFakeUnlockRepo()
	jobRepo := newFakeJobRepo(jobs...)
	gate := gateAt(unlockRepo, today)
	svc := NewJobService(jobRepo, gate)
	return svc, unlockRepo, jobRepo
}

func jobWithContact(id, publishDay, publisherID string) *models.Job {
	job := &models.Job{
		PublisherID:   publisherID,
		Title:         "传单派发",
		Company:       "某商贸公司",
		City:          "上海",
		Contact:       "13812345678",
		ContactPerson: "王经理",
		ContactTime:   "9:00-18:00",
		PublishDay:    publishDay,
		Status:        models.JobStatusActive,
	}
	job.ID = id
	return job
}

func TestGetJob_HistoricalLockedMasksContact(t *testing.T) {
	svc, _, _ := newJobFixture(t, jobWithContact("job-1", yesterday, "owner-1"))

	detail, err := svc.GetJob(context.Background(), nil, "job-1", "viewer-1")

	require.NoError(t, err)
	assert.False(t, detail.IsUnlocked)
	assert.True(t, detail.NeedShareToUnlock)
	assert.Equal(t, "138****5678", detail.Contact)
	assert.Equal(t, "王**", detail.ContactPerson)
	// ContactTime is gated too and has no masked form.
	assert.Empty(t, detail.ContactTime)
	// The phone slot is masked, never omitted.
	assert.NotEmpty(t, detail.Contact)
	assert.NotEmpty(t, detail.ContactPerson)
}

func TestGetJob_TodayJobShowsRealContact(t *testing.T) {
	svc, _, _ := newJobFixture(t, jobWithContact("job-1", today, "owner-1"))

	detail, err := svc.GetJob(context.Background(), nil, "job-1", "viewer-1")

	require.NoError(t, err)
	assert.True(t, detail.IsToday)
	assert.True(t, detail.IsUnlocked)
	assert.Equal(t, "13812345678", detail.Contact)
	assert.Equal(t, "王经理", detail.ContactPerson)
}

func TestGetJob_UnlockedHistoricalJobShowsRealContact(t *testing.T) {
	svc, unlockRepo, _ := newJobFixture(t, jobWithContact("job-1", yesterday, "owner-1"))
	_, err := unlockRepo.RecordUnlock(context.Background(), nil, &models.ShareRecord{
		UserID: "viewer-1", UnlockDay: yesterday, JobID: "job-1",
	})
	require.NoError(t, err)

	detail, err := svc.GetJob(context.Background(), nil, "job-1", "viewer-1")

	require.NoError(t, err)
	assert.True(t, detail.IsUnlocked)
	assert.False(t, detail.NeedShareToUnlock)
	assert.Equal(t, "13812345678", detail.Contact)
	assert.Equal(t, "9:00-18:00", detail.ContactTime)
}

func TestGetJob_OwnerAlwaysSeesRealContact(t *testing.T) {
	svc, _, _ := newJobFixture(t, jobWithContact("job-1", yesterday, "owner-1"))

	detail, err := svc.GetJob(context.Background(), nil, "job-1", "owner-1")

	require.NoError(t, err)
	assert.True(t, detail.IsUnlocked)
	assert.Equal(t, "13812345678", detail.Contact)
}

func TestGetJob_AnonymousViewerGetsMaskedContact(t *testing.T) {
	svc, _, _ := newJobFixture(t, jobWithContact("job-1", yesterday, "owner-1"))

	detail, err := svc.GetJob(context.Background(), nil, "job-1", "")

	require.NoError(t, err)
	assert.False(t, detail.IsUnlocked)
	assert.Equal(t, "138****5678", detail.Contact)
}

func TestGetJob_ClosedJobHiddenFromNonOwner(t *testing.T) {
	job := jobWithContact("job-1", yesterday, "owner-1")
	job.Status = models.JobStatusClosed
	svc, _, _ := newJobFixture(t, job)

	_, err := svc.GetJob(context.Background(), nil, "job-1", "viewer-1")
	assert.ErrorIs(t, err, apperrors.ErrJobNotVisible)

	// The owner still sees their own closed listing.
	detail, err := svc.GetJob(context.Background(), nil, "job-1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "13812345678", detail.Contact)
}

func TestPublishJob_StampsTodayAndReturnsUnmasked(t *testing.T) {
	svc, _, jobRepo := newJobFixture(t)

	detail, err := svc.PublishJob(context.Background(), nil, &dto.CreateJobRequest{
		PublisherID:   "owner-1",
		Title:         "促销员",
		Company:       "某公司",
		City:          "北京",
		Contact:       "13812345678",
		ContactPerson: "李经理",
	})

	require.NoError(t, err)
	assert.Equal(t, today, detail.PublishDay)
	assert.Equal(t, "13812345678", detail.Contact)

	stored, err := jobRepo.FindByID(context.Background(), nil, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, today, stored.PublishDay)
	assert.Equal(t, models.JobStatusActive, stored.Status)
}

func TestUpdateJobStatus_OwnershipEnforced(t *testing.T) {
	svc, _, jobRepo := newJobFixture(t, jobWithContact("job-1", yesterday, "owner-1"))

	err := svc.UpdateJobStatus(context.Background(), nil, "job-1", "intruder", models.JobStatusClosed)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	err = svc.UpdateJobStatus(context.Background(), nil, "job-1", "owner-1", models.JobStatusClosed)
	require.NoError(t, err)

	stored, err := jobRepo.FindByID(context.Background(), nil, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, stored.Status)
}

func TestDeleteJob_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newJobFixture(t, jobWithContact("job-1", yesterday, "owner-1"))

	err := svc.DeleteJob(context.Background(), nil, "job-1", "intruder")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	err = svc.DeleteJob(context.Background(), nil, "job-1", "owner-1")
	require.NoError(t, err)

	err = svc.DeleteJob(context.Background(), nil, "job-1", "owner-1")
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
