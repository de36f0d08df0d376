package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weijob_backend/internal/models"
	"weijob_backend/internal/repositories"

	"gorm.io/gorm"
)

// In-memory repository doubles. They ignore the *gorm.DB argument, so
// services under test are constructed around nil databases.

type fakeUnlockRepo struct {
	mu      sync.Mutex
	records map[string]*models.ShareRecord // key: userID + "|" + day
	nextID  int
	failErr error // when set, every method returns this error
}

func newFakeUnlockRepo() *fakeUnlockRepo {
	return &fakeUnlockRepo{records: make(map[string]*models.ShareRecord)}
}

func unlockKey(userID, day string) string {
	return userID + "|" + day
}

func (f *fakeUnlockRepo) IsUnlocked(ctx context.Context, db *gorm.DB, userID, day string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return false, f.failErr
	}
	_, ok := f.records[unlockKey(userID, day)]
	return ok, nil
}

func (f *fakeUnlockRepo) RecordUnlock(ctx context.Context, db *gorm.DB, rec *models.ShareRecord) (*models.ShareRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	key := unlockKey(rec.UserID, rec.UnlockDay)
	if existing, ok := f.records[key]; ok {
		return existing, nil
	}
	f.nextID++
	stored := *rec
	stored.ID = fmt.Sprintf("share-%d", f.nextID)
	stored.CreatedAt = time.Now()
	f.records[key] = &stored
	return &stored, nil
}

func (f *fakeUnlockRepo) FindByUserAndDay(ctx context.Context, db *gorm.DB, userID, day string) (*models.ShareRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	rec, ok := f.records[unlockKey(userID, day)]
	if !ok {
		return nil, repositories.ErrShareRecordNotFound
	}
	return rec, nil
}

func (f *fakeUnlockRepo) ListByUser(ctx context.Context, db *gorm.DB, userID string, limit int) ([]models.ShareRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	var out []models.ShareRecord
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeUnlockRepo) PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Time) ([]models.ShareRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	var purged []models.ShareRecord
	for key, rec := range f.records {
		if rec.CreatedAt.Before(olderThan) {
			purged = append(purged, *rec)
			delete(f.records, key)
		}
	}
	return purged, nil
}

func (f *fakeUnlockRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newFakeJobRepo(jobs ...*models.Job) *fakeJobRepo {
	f := &fakeJobRepo{jobs: make(map[string]*models.Job)}
	for _, j := range jobs {
		f.jobs[j.ID] = j
	}
	return f
}

func (f *fakeJobRepo) Create(ctx context.Context, db *gorm.DB, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", len(f.jobs)+1)
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeJobRepo) Search(ctx context.Context, db *gorm.DB, filter repositories.JobFilter) ([]models.Job, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, j := range f.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		out = append(out, *j)
	}
	return out, int64(len(out)), nil
}

func (f *fakeJobRepo) ListByPublisher(ctx context.Context, db *gorm.DB, publisherID string) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, j := range f.jobs {
		if j.PublisherID == publisherID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id string, status models.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return repositories.ErrJobNotFound
	}
	job.Status = status
	return nil
}

func (f *fakeJobRepo) IncrementViews(ctx context.Context, db *gorm.DB, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[id]; ok {
		job.Views++
	}
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(f.jobs, id)
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User // key: open id
	nextID int
	// When set, the next FindByOpenID misses even for a stored user,
	// simulating a reader that lost a concurrent-registration race.
	missNextFind bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByOpenID(ctx context.Context, db *gorm.DB, openID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missNextFind {
		f.missNextFind = false
		return nil, repositories.ErrUserNotFound
	}
	u, ok := f.users[openID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.OpenID]; ok {
		return repositories.ErrUserAlreadyExists
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[user.OpenID] = user
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, db *gorm.DB, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.OpenID]; !ok {
		return repositories.ErrUserNotFound
	}
	f.users[user.OpenID] = user
	return nil
}

func (f *fakeUserRepo) UpdateLastActive(ctx context.Context, db *gorm.DB, userID string) error {
	return nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, db *gorm.DB) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

// gateAt builds a gate with a frozen clock and no cache.
func gateAt(repo repositories.UnlockRepository, day string) *VisibilityGate {
	gate := NewVisibilityGate(repo, nil)
	fixed, err := time.Parse(models.DayFormat, day)
	if err != nil {
		panic(err)
	}
	gate.now = func() time.Time { return fixed }
	return gate
}
