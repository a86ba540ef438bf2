package chat

import "time"

// Chat is the aggregate for a conversation and its member set.
//
// The application layer hydrates it from the repository before invoking its
// behaviors; persistence stays outside the domain.
type Chat struct {
	Conversation Conversation
	Members      map[string]struct{} // keyed by profile id
}

func NewChat(c Conversation, memberIDs []string) *Chat {
	members := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}
	return &Chat{Conversation: c, Members: members}
}

func (c *Chat) HasMember(profileID string) bool {
	if c == nil || c.Members == nil {
		return false
	}
	_, ok := c.Members[profileID]
	return ok
}

// Recipients lists every member except the sender; these are the fan-out
// targets of a new message.
func (c *Chat) Recipients(senderID string) []string {
	out := make([]string, 0, len(c.Members))
	for id := range c.Members {
		if id != senderID {
			out = append(out, id)
		}
	}
	return out
}

// IsDirectBetween reports whether this is the direct thread of exactly {a, b}.
func (c *Chat) IsDirectBetween(a, b string) bool {
	if c == nil || !c.Conversation.IsDirectCandidate() || len(c.Members) != 2 {
		return false
	}
	return c.HasMember(a) && c.HasMember(b)
}

// PostMessage validates a new message against the aggregate.
//
// Validations:
// - Conversation identity must match
// - Sender must be a member
// - Content must not be blank
func (c *Chat) PostMessage(senderID, content string, now time.Time) (Message, error) {
	if c == nil || c.Conversation.ID == "" {
		return Message{}, ErrConversationNotFound
	}
	m, err := NewMessage(c.Conversation.ID, senderID, content, now)
	if err != nil {
		return Message{}, err
	}
	if !c.HasMember(senderID) {
		return Message{}, ErrNotParticipant
	}
	return m, nil
}
