package chat

import (
	"strings"
	"time"
)

// Conversation is a direct (1:1, untitled) or group (titled) thread.
type Conversation struct {
	ID        string    `db:"id" json:"id"`
	Title     *string   `db:"title" json:"title"`
	IsGroup   bool      `db:"is_group" json:"is_group"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsDirectCandidate reports whether c can be the direct thread of some pair.
func (c Conversation) IsDirectCandidate() bool {
	return !c.IsGroup && c.Title == nil
}

// NewDirectConversation validates a pair and shapes the conversation row.
func NewDirectConversation(userA, userB string, now time.Time) (Conversation, []string, error) {
	userA, userB = strings.TrimSpace(userA), strings.TrimSpace(userB)
	if userA == "" || userB == "" || userA == userB {
		return Conversation{}, nil, ErrInvalidMembers
	}
	now = now.UTC()
	return Conversation{IsGroup: false, CreatedAt: now, UpdatedAt: now}, []string{userA, userB}, nil
}

// NewGroupConversation requires a title and at least two distinct members.
// Repeated member ids collapse to one membership.
func NewGroupConversation(title string, memberIDs []string, now time.Time) (Conversation, []string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Conversation{}, nil, ErrTitleRequired
	}
	members := distinct(memberIDs)
	if len(members) < 2 {
		return Conversation{}, nil, ErrInvalidMembers
	}
	now = now.UTC()
	return Conversation{Title: &title, IsGroup: true, CreatedAt: now, UpdatedAt: now}, members, nil
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
