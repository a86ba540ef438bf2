package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	cacheport "go-hrdesk/internal/infrastructure/cache/port"
	"go-hrdesk/internal/infrastructure/logger"
	directory "go-hrdesk/internal/pkg/directory/application/domain"
	repository "go-hrdesk/internal/pkg/directory/persistence/repository/port"
)

const profileKeyPrefix = "directory:profile:"

// CachedProfileRepository puts a read-through cache in front of single-profile
// lookups. Live message threads resolve the sender of every pushed message, so
// those lookups dominate directory traffic. Role and full listings always go to
// the backing store.
type CachedProfileRepository struct {
	inner repository.ProfileRepository
	cache cacheport.Cache
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedProfileRepository(inner repository.ProfileRepository, cache cacheport.Cache, ttl time.Duration, log *logger.Logger) *CachedProfileRepository {
	if log == nil {
		log = logger.Default()
	}
	return &CachedProfileRepository{inner: inner, cache: cache, ttl: ttl, log: log}
}

var _ repository.ProfileRepository = (*CachedProfileRepository)(nil)

func (r *CachedProfileRepository) GetByID(ctx context.Context, id string) (*directory.Profile, error) {
	if p, ok := r.lookup(ctx, id); ok {
		return &p, nil
	}
	p, err := r.inner.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	r.store(ctx, *p)
	return p, nil
}

func (r *CachedProfileRepository) GetByIDs(ctx context.Context, ids []string) ([]directory.Profile, error) {
	profiles := make([]directory.Profile, 0, len(ids))
	var misses []string
	for _, id := range ids {
		if p, ok := r.lookup(ctx, id); ok {
			profiles = append(profiles, p)
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return profiles, nil
	}

	fetched, err := r.inner.GetByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, p := range fetched {
		r.store(ctx, p)
	}
	return append(profiles, fetched...), nil
}

func (r *CachedProfileRepository) ListByRole(ctx context.Context, role directory.Role) ([]directory.Profile, error) {
	return r.inner.ListByRole(ctx, role)
}

func (r *CachedProfileRepository) List(ctx context.Context) ([]directory.Profile, error) {
	return r.inner.List(ctx)
}

// Invalidate drops the cached copy of a profile.
func (r *CachedProfileRepository) Invalidate(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, profileKeyPrefix+id)
	}
	_, err := r.cache.Del(ctx, keys...)
	return err
}

func (r *CachedProfileRepository) lookup(ctx context.Context, id string) (directory.Profile, bool) {
	raw, err := r.cache.Get(ctx, profileKeyPrefix+id)
	if err != nil {
		if !errors.Is(err, cacheport.ErrMiss) {
			r.log.Warnf("directory: cache get %s: %v", id, err)
		}
		return directory.Profile{}, false
	}
	var p directory.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		r.log.Warnf("directory: cache entry for %s is corrupt: %v", id, err)
		return directory.Profile{}, false
	}
	return p, true
}

func (r *CachedProfileRepository) store(ctx context.Context, p directory.Profile) {
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, profileKeyPrefix+p.ID, string(b), r.ttl); err != nil {
		r.log.Warnf("directory: cache set %s: %v", p.ID, err)
	}
}
