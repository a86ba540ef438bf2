package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	ErrInvalidMembers       = errors.New("chat: a direct conversation needs two distinct members, a group at least two")
	ErrTitleRequired        = errors.New("chat: group conversation requires a title")
	ErrInvalidMessage       = errors.New("chat: conversation_id and sender_id are required")
	ErrEmptyMessage         = errors.New("chat: empty message content")
	ErrNotParticipant       = errors.New("chat: sender is not a member of the conversation")
	ErrConversationNotFound = errors.New("chat: conversation not found")
	ErrNotGroup             = errors.New("chat: members can only be added to a group conversation")
)
