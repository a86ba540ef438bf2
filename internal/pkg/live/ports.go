// Package live keeps per-viewer view state in sync with the change feed.
//
// Every view owns exactly one scoped subscription. Open acquires it and Close
// releases it; a failed Open releases it before returning. Views never share
// state: each one re-fetches on its own when an event arrives.
package live

import (
	"context"

	chat "go-hrdesk/internal/pkg/chat/application/domain"
	chatUsecase "go-hrdesk/internal/pkg/chat/application/usecase"
	directory "go-hrdesk/internal/pkg/directory/application/domain"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"
)

type MessageLister interface {
	Execute(ctx context.Context, in chatUsecase.GetConversationMessagesInput) ([]chat.MessageWithSender, error)
}

type MessageReader interface {
	Execute(ctx context.Context, in chatUsecase.MarkMessagesAsReadInput) (*chatUsecase.MarkMessagesAsReadOutput, error)
}

type MessageSender interface {
	Execute(ctx context.Context, in chatUsecase.SendMessageInput) (*chat.Message, error)
}

type ConversationLister interface {
	Execute(ctx context.Context, in chatUsecase.ListConversationsInput) ([]chat.ConversationSummary, error)
}

type BadgeCounter interface {
	Execute(ctx context.Context, in notifyUsecase.GetBadgeCountInput) (int, error)
}

type NotificationLister interface {
	Execute(ctx context.Context, in notifyUsecase.ListNotificationsInput) ([]notification.WithSender, error)
}

type UnreadCounter interface {
	Count(ctx context.Context, userID string) (int, error)
}

type ProfileReader interface {
	GetByID(ctx context.Context, id string) (*directory.Profile, error)
}

// Listener receives a fresh snapshot each time a view's state changes.
type Listener func(view string, data any)

// View is the lifecycle shared by every view model.
type View interface {
	Name() string
	Open(ctx context.Context) error
	Close() error
}
