package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"

	"github.com/google/uuid"
)

// NotificationStore is the in-process notification table.
type NotificationStore struct {
	mu   sync.RWMutex
	rows []stored
	seq  uint64
}

type stored struct {
	notification.Notification
	seq uint64
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

var _ repository.NotificationRepository = (*NotificationStore)(nil)

func (s *NotificationStore) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(n), nil
}

func (s *NotificationStore) CreateMany(_ context.Context, ns []notification.Notification) ([]notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notification.Notification, 0, len(ns))
	for _, n := range ns {
		out = append(out, s.insert(n))
	}
	return out, nil
}

func (s *NotificationStore) insert(n notification.Notification) notification.Notification {
	n.ID = uuid.NewString()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	s.seq++
	s.rows = append(s.rows, stored{Notification: n, seq: s.seq})
	return n
}

func (s *NotificationStore) Get(_ context.Context, id string) (*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rows {
		if r.ID == id {
			n := r.Notification
			return &n, nil
		}
	}
	return nil, nil
}

func (s *NotificationStore) ListByRecipient(_ context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	picked := []stored{}
	for _, r := range s.rows {
		if r.RecipientID == recipientID {
			picked = append(picked, r)
		}
	}
	sort.Slice(picked, func(i, j int) bool {
		if !picked[i].CreatedAt.Equal(picked[j].CreatedAt) {
			return picked[i].CreatedAt.After(picked[j].CreatedAt)
		}
		return picked[i].seq > picked[j].seq
	})
	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}
	out := make([]notification.Notification, len(picked))
	for i, r := range picked {
		out[i] = r.Notification
	}
	return out, nil
}

func (s *NotificationStore) CountUnread(_ context.Context, recipientID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.rows {
		if r.RecipientID == recipientID && !r.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *NotificationStore) MarkRead(_ context.Context, id, recipientID string) (*notification.Notification, error) {
	changed := s.markWhere(func(n notification.Notification) bool {
		return n.ID == id && (recipientID == "" || n.RecipientID == recipientID)
	})
	if len(changed) == 0 {
		return nil, nil
	}
	return &changed[0], nil
}

func (s *NotificationStore) MarkAllRead(_ context.Context, recipientID string) ([]notification.Notification, error) {
	return s.markWhere(func(n notification.Notification) bool { return n.RecipientID == recipientID }), nil
}

func (s *NotificationStore) MarkReadByReferences(_ context.Context, recipientID string, typ notification.Type, refType notification.ReferenceType, referenceIDs []string) ([]notification.Notification, error) {
	refs := make(map[string]struct{}, len(referenceIDs))
	for _, id := range referenceIDs {
		refs[id] = struct{}{}
	}
	return s.markWhere(func(n notification.Notification) bool {
		if n.RecipientID != recipientID || n.Type != typ || n.ReferenceID == nil {
			return false
		}
		if n.ReferenceType == nil || *n.ReferenceType != refType {
			return false
		}
		_, ok := refs[*n.ReferenceID]
		return ok
	}), nil
}

func (s *NotificationStore) markWhere(match func(notification.Notification) bool) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := []notification.Notification{}
	for i := range s.rows {
		r := &s.rows[i]
		if match(r.Notification) && r.MarkRead() {
			changed = append(changed, r.Notification)
		}
	}
	return changed
}

func (s *NotificationStore) Delete(_ context.Context, id, recipientID string) (*notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.ID == id && (recipientID == "" || r.RecipientID == recipientID) {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			n := r.Notification
			return &n, nil
		}
	}
	return nil, nil
}
