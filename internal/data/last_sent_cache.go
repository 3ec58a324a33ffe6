package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tablewatch/tablewatch/internal/core"
	"github.com/tablewatch/tablewatch/internal/domain/model"
)

const lastSentKeyPrefix = "monitor:lastsent:"

// LastSentCacheRepo caches last-sent snapshots per alert kind so repeated
// monitor passes do not re-run the aggregation query against the store.
// Entries are TTL-bounded and invalidated after a successful mark-sent
// dispatch, which is the only path that changes the underlying data.
type LastSentCacheRepo struct {
	cache core.CacheRepository
	ttl   time.Duration
}

// NewLastSentCacheRepo creates a new LastSentCacheRepo.
func NewLastSentCacheRepo(cache core.CacheRepository, ttl time.Duration) (*LastSentCacheRepo, error) {
	if cache == nil {
		return nil, errors.New("cache repository is required")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &LastSentCacheRepo{cache: cache, ttl: ttl}, nil
}

func lastSentKey(kind model.AlertKind) string {
	return lastSentKeyPrefix + kind.String()
}

// Get returns the cached snapshot for the kind. A miss returns ok=false with
// no error; a corrupt entry is treated as a miss.
func (r *LastSentCacheRepo) Get(ctx context.Context, kind model.AlertKind) (model.LastSentTimes, bool, error) {
	raw, err := r.cache.Get(ctx, lastSentKey(kind))
	if err != nil {
		return nil, false, fmt.Errorf("last sent cache get: %w", err)
	}
	if raw == nil {
		return nil, false, nil
	}

	var times model.LastSentTimes
	if err := json.Unmarshal(raw, &times); err != nil {
		// Stale or corrupt payload; fall back to the store query.
		return nil, false, nil
	}
	return times, true, nil
}

// Put stores the snapshot for the kind with the configured TTL.
func (r *LastSentCacheRepo) Put(ctx context.Context, kind model.AlertKind, times model.LastSentTimes) error {
	raw, err := json.Marshal(times)
	if err != nil {
		return fmt.Errorf("last sent cache encode: %w", err)
	}
	if err := r.cache.Set(ctx, lastSentKey(kind), raw, r.ttl); err != nil {
		return fmt.Errorf("last sent cache put: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for the kind.
func (r *LastSentCacheRepo) Invalidate(ctx context.Context, kind model.AlertKind) error {
	if _, err := r.cache.Delete(ctx, lastSentKey(kind)); err != nil {
		return fmt.Errorf("last sent cache invalidate: %w", err)
	}
	return nil
}
