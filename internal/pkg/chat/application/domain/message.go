package chat

import (
	"strings"
	"time"

	directory "go-hrdesk/internal/pkg/directory/application/domain"
)

// Message is immutable once stored, except IsRead which only moves false -> true.
type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	SenderID       string    `db:"sender_id" json:"sender_id"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	IsRead         bool      `db:"is_read" json:"is_read"`
}

// NewMessage trims content and rejects blank messages.
func NewMessage(conversationID, senderID, content string, now time.Time) (Message, error) {
	if conversationID == "" || senderID == "" {
		return Message{}, ErrInvalidMessage
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Message{}, ErrEmptyMessage
	}
	if now.IsZero() {
		now = time.Now()
	}
	return Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        trimmed,
		CreatedAt:      now.UTC(),
		IsRead:         false,
	}, nil
}

// MessageWithSender is a message joined with the minimal sender profile for display.
// Sender is nil when the profile no longer exists.
type MessageWithSender struct {
	Message
	Sender *directory.Summary `json:"sender"`
}
