package appraisal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
)

// Lister loads the full active reference set in one call.
type Lister interface {
	ListActive(ctx context.Context) ([]model.AppraisalCategory, error)
}

// CachedSource keeps an in-memory snapshot of the appraisal categories and
// refreshes it lazily once it grows older than TTL. Reference data changes
// rarely, bid placement reads it on the hot path.
//
// A refresh failure keeps serving the previous snapshot and logs the error.
type CachedSource struct {
	Lister Lister
	TTL    time.Duration

	mu        sync.RWMutex
	byCode    map[string]model.AppraisalCategory
	refreshed time.Time
}

func NewCachedSource(lister Lister, ttl time.Duration) *CachedSource {
	return &CachedSource{Lister: lister, TTL: ttl}
}

func (cs *CachedSource) GetByCode(ctx context.Context, code string) (model.AppraisalCategory, error) {
	cs.mu.RLock()
	stale := time.Since(cs.refreshed) > cs.TTL
	cat, ok := cs.byCode[code]
	cs.mu.RUnlock()

	if stale {
		if err := cs.refresh(ctx); err != nil {
			slog.Error("can't refresh appraisal categories", slog.Any("error", err))

			// serve the old snapshot if there is one
			if ok {
				return cat, nil
			}
			return model.AppraisalCategory{}, err
		}

		cs.mu.RLock()
		cat, ok = cs.byCode[code]
		cs.mu.RUnlock()
	}

	if !ok {
		return model.AppraisalCategory{}, fmt.Errorf("appraisal category %q: %w", code, database.ErrNotFound)
	}

	return cat, nil
}

func (cs *CachedSource) refresh(ctx context.Context) error {
	cats, err := cs.Lister.ListActive(ctx)
	if err != nil {
		return err
	}

	byCode := make(map[string]model.AppraisalCategory, len(cats))
	for _, c := range cats {
		byCode[c.Code] = c
	}

	cs.mu.Lock()
	cs.byCode = byCode
	cs.refreshed = time.Now()
	cs.mu.Unlock()

	return nil
}
