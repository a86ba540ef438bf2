package repository

import (
	"context"
	"time"

	chat "go-hrdesk/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations, memberships and messages.
// Reads of unknown ids return empty results, never an error.
type ChatRepository interface {
	// CreateConversation inserts c and returns it with the store-assigned id.
	CreateConversation(ctx context.Context, c chat.Conversation) (chat.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error)
	// ListConversationsByIDs returns the rows ordered by updated_at descending.
	ListConversationsByIDs(ctx context.Context, ids []string) ([]chat.Conversation, error)
	// ListDirectCandidates returns non-group, untitled conversations, oldest first.
	ListDirectCandidates(ctx context.Context) ([]chat.Conversation, error)
	TouchConversation(ctx context.Context, conversationID string, at time.Time) error

	// AddMember reports false when the membership already existed.
	AddMember(ctx context.Context, m chat.Member) (bool, error)
	ListMembers(ctx context.Context, conversationIDs []string) ([]chat.Member, error)
	ListConversationIDsForProfile(ctx context.Context, profileID string) ([]string, error)
	CountDegenerateDirect(ctx context.Context) ([]chat.MemberCount, error)

	SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error)
	// GetMessagesByConversation returns messages ordered by created_at ascending.
	GetMessagesByConversation(ctx context.Context, conversationID string) ([]chat.Message, error)
	LatestMessages(ctx context.Context, conversationIDs []string) (map[string]chat.Message, error)
	ListMessageIDs(ctx context.Context, conversationID string) ([]string, error)
	// MarkMessagesRead flips unread messages not sent by readerID and returns the rows it changed.
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) ([]chat.Message, error)
	CountUnreadMessages(ctx context.Context, conversationIDs []string, readerID string) (int, error)
}
