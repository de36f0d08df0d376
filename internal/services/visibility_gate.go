package services

import (
	"context"
	"time"

	"weijob_backend/internal/cache"
	"weijob_backend/internal/models"
	"weijob_backend/internal/repositories"
	"weijob_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// GatedItem is the minimal contract the gate needs from a content item.
// Deliberately narrow so the gate survives job-schema churn.
type GatedItem interface {
	ItemID() string
	ItemPublishDay() string
}

// Visibility is the gate's answer for one (item, user) pair.
type Visibility struct {
	IsToday    bool
	IsUnlocked bool
	NeedShare  bool
}

// VisibilityGate is the single authority for "may this identity see this
// item's contact fields right now". Jobs published today are always open
// for everyone; older jobs require a ledger entry for the job's publish
// day. The gate itself is a pure decision over one ledger lookup.
type VisibilityGate struct {
	unlockRepo  repositories.UnlockRepository
	unlockCache *cache.UnlockCache
	now         func() time.Time
}

func NewVisibilityGate(unlockRepo repositories.UnlockRepository, unlockCache *cache.UnlockCache) *VisibilityGate {
	return &VisibilityGate{
		unlockRepo:  unlockRepo,
		unlockCache: unlockCache,
		now:         time.Now,
	}
}

// CurrentDay returns the canonical calendar day for gating decisions.
func (g *VisibilityGate) CurrentDay() string {
	return g.now().Format(models.DayFormat)
}

// Resolve decides visibility for the item and user.
//
// The clock is read once per resolution so a midnight rollover cannot
// split a single request. Day comparison is string equality on the
// calendar day, never timestamp arithmetic. An item without a publish
// day is never "today": malformed data fails safe toward privacy.
//
// A ledger read failure propagates as a storage error; it is never
// silently reported as "locked", so an outage cannot masquerade as a
// permanent lock-out.
func (g *VisibilityGate) Resolve(ctx context.Context, db *gorm.DB, item GatedItem, userID string) (Visibility, error) {
	today := g.CurrentDay()
	day := item.ItemPublishDay()

	if day != "" && day == today {
		return Visibility{IsToday: true, IsUnlocked: true}, nil
	}

	// Anonymous viewers of historical jobs always see the masked form.
	if userID == "" || day == "" {
		return Visibility{NeedShare: true}, nil
	}

	// Positive cache hits short-circuit; anything else asks the database.
	if unlocked, ok := g.unlockCache.GetUnlocked(ctx, userID, day); ok && unlocked {
		return Visibility{IsUnlocked: true}, nil
	}

	unlocked, err := g.unlockRepo.IsUnlocked(ctx, db, userID, day)
	if err != nil {
		return Visibility{}, apperrors.ErrStorage(err)
	}
	if unlocked {
		g.unlockCache.SetUnlocked(ctx, userID, day)
		return Visibility{IsUnlocked: true}, nil
	}
	return Visibility{NeedShare: true}, nil
}
