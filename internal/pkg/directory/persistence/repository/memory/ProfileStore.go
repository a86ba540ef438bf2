package memory

import (
	"context"
	"sort"
	"sync"

	directory "go-hrdesk/internal/pkg/directory/application/domain"
	repository "go-hrdesk/internal/pkg/directory/persistence/repository/port"
)

// ProfileStore is an in-memory directory used by tests and STORAGE_BACKEND=memory.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]directory.Profile
}

func NewProfileStore(seed ...directory.Profile) *ProfileStore {
	s := &ProfileStore{profiles: make(map[string]directory.Profile)}
	for _, p := range seed {
		s.profiles[p.ID] = p
	}
	return s
}

var _ repository.ProfileRepository = (*ProfileStore)(nil)

// Put inserts or replaces a profile.
func (s *ProfileStore) Put(p directory.Profile) {
	s.mu.Lock()
	s.profiles[p.ID] = p
	s.mu.Unlock()
}

func (s *ProfileStore) GetByID(_ context.Context, id string) (*directory.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *ProfileStore) GetByIDs(_ context.Context, ids []string) ([]directory.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []directory.Profile{}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProfileStore) ListByRole(_ context.Context, role directory.Role) ([]directory.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []directory.Profile{}
	for _, p := range s.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	sortProfiles(out)
	return out, nil
}

func (s *ProfileStore) List(_ context.Context) ([]directory.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]directory.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sortProfiles(out)
	return out, nil
}

func sortProfiles(ps []directory.Profile) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].LastName != ps[j].LastName {
			return ps[i].LastName < ps[j].LastName
		}
		if ps[i].FirstName != ps[j].FirstName {
			return ps[i].FirstName < ps[j].FirstName
		}
		return ps[i].ID < ps[j].ID
	})
}
