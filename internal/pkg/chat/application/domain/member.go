package chat

import "time"

// Member links a profile to a conversation. Rows are never updated.
// Primary key: (ConversationID, ProfileID)
type Member struct {
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	ProfileID      string    `db:"profile_id" json:"profile_id"`
	JoinedAt       time.Time `db:"joined_at" json:"joined_at"`
}

// MemberCount is a conversation with its membership size, used by the
// degenerate-conversation sweep.
type MemberCount struct {
	ConversationID string    `json:"conversation_id"`
	CreatedAt      time.Time `json:"created_at"`
	Members        int       `json:"members"`
}
