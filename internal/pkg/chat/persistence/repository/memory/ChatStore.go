package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"

	"github.com/google/uuid"
)

// ChatStore keeps conversations, memberships and messages in process memory.
// Deleting a conversation cascades to its rows like the Postgres foreign keys do.
type ChatStore struct {
	mu            sync.RWMutex
	conversations map[string]chat.Conversation
	members       map[string][]chat.Member // by conversation id
	messages      []storedMessage
	seq           uint64
}

// storedMessage carries an insertion sequence to break created_at ties.
type storedMessage struct {
	chat.Message
	seq uint64
}

func NewChatStore() *ChatStore {
	return &ChatStore{
		conversations: make(map[string]chat.Conversation),
		members:       make(map[string][]chat.Member),
	}
}

var _ repository.ChatRepository = (*ChatStore)(nil)

func (s *ChatStore) CreateConversation(_ context.Context, c chat.Conversation) (chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	s.conversations[c.ID] = c
	return c, nil
}

func (s *ChatStore) DeleteConversation(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
	delete(s.members, conversationID)
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ConversationID != conversationID {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	return nil
}

func (s *ChatStore) GetConversation(_ context.Context, conversationID string) (*chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *ChatStore) ListConversationsByIDs(_ context.Context, ids []string) ([]chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []chat.Conversation{}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := s.conversations[id]; ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *ChatStore) ListDirectCandidates(_ context.Context) ([]chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []chat.Conversation{}
	for _, c := range s.conversations {
		if c.IsDirectCandidate() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *ChatStore) TouchConversation(_ context.Context, conversationID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.conversations[conversationID]; ok {
		c.UpdatedAt = at
		s.conversations[conversationID] = c
	}
	return nil
}

func (s *ChatStore) AddMember(_ context.Context, m chat.Member) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[m.ConversationID]; !ok {
		return false, chat.ErrConversationNotFound
	}
	for _, existing := range s.members[m.ConversationID] {
		if existing.ProfileID == m.ProfileID {
			return false, nil
		}
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	s.members[m.ConversationID] = append(s.members[m.ConversationID], m)
	return true, nil
}

func (s *ChatStore) ListMembers(_ context.Context, conversationIDs []string) ([]chat.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []chat.Member{}
	for _, id := range conversationIDs {
		out = append(out, s.members[id]...)
	}
	return out, nil
}

func (s *ChatStore) ListConversationIDsForProfile(_ context.Context, profileID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for convID, ms := range s.members {
		for _, m := range ms {
			if m.ProfileID == profileID {
				ids = append(ids, convID)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *ChatStore) CountDegenerateDirect(_ context.Context) ([]chat.MemberCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []chat.MemberCount{}
	for id, c := range s.conversations {
		if c.IsGroup {
			continue
		}
		if n := len(s.members[id]); n != 2 {
			out = append(out, chat.MemberCount{ConversationID: id, CreatedAt: c.CreatedAt, Members: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *ChatStore) SaveMessage(_ context.Context, m chat.Message) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[m.ConversationID]; !ok {
		return chat.Message{}, chat.ErrConversationNotFound
	}
	m.ID = uuid.NewString()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.seq++
	s.messages = append(s.messages, storedMessage{Message: m, seq: s.seq})
	return m, nil
}

func (s *ChatStore) GetMessagesByConversation(_ context.Context, conversationID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedMessages(conversationID), nil
}

func (s *ChatStore) LatestMessages(_ context.Context, conversationIDs []string) (map[string]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := make(map[string]chat.Message, len(conversationIDs))
	for _, id := range conversationIDs {
		if msgs := s.sortedMessages(id); len(msgs) > 0 {
			latest[id] = msgs[len(msgs)-1]
		}
	}
	return latest, nil
}

func (s *ChatStore) ListMessageIDs(_ context.Context, conversationID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := []string{}
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

func (s *ChatStore) MarkMessagesRead(_ context.Context, conversationID, readerID string) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := []chat.Message{}
	for i := range s.messages {
		m := &s.messages[i]
		if m.ConversationID != conversationID || m.SenderID == readerID || m.IsRead {
			continue
		}
		m.IsRead = true
		updated = append(updated, m.Message)
	}
	return updated, nil
}

func (s *ChatStore) CountUnreadMessages(_ context.Context, conversationIDs []string, readerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in := make(map[string]struct{}, len(conversationIDs))
	for _, id := range conversationIDs {
		in[id] = struct{}{}
	}
	n := 0
	for _, m := range s.messages {
		if _, ok := in[m.ConversationID]; ok && m.SenderID != readerID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *ChatStore) sortedMessages(conversationID string) []chat.Message {
	picked := []storedMessage{}
	for _, m := range s.messages {
		if m.ConversationID == conversationID {
			picked = append(picked, m)
		}
	}
	sort.Slice(picked, func(i, j int) bool {
		if !picked[i].CreatedAt.Equal(picked[j].CreatedAt) {
			return picked[i].CreatedAt.Before(picked[j].CreatedAt)
		}
		return picked[i].seq < picked[j].seq
	})
	out := make([]chat.Message, len(picked))
	for i, m := range picked {
		out[i] = m.Message
	}
	return out
}
