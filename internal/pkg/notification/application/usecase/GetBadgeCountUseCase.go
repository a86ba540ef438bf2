package usecase

import (
	"context"

	notification "go-hrdesk/internal/pkg/notification/application/domain"
)

// UnreadCounter counts one category of unread items for a user.
type UnreadCounter interface {
	Count(ctx context.Context, userID string) (int, error)
}

type GetBadgeCountInput struct {
	UserID string `validate:"required"`
	Kind   notification.BadgeKind
}

// GetBadgeCountUseCase sums the unread notification and unread message
// counters. The two come from different rows and are allowed to disagree.
type GetBadgeCountUseCase struct {
	Notifications UnreadCounter
	Messages      UnreadCounter
}

func NewGetBadgeCountUseCase(notifications, messages UnreadCounter) *GetBadgeCountUseCase {
	return &GetBadgeCountUseCase{Notifications: notifications, Messages: messages}
}

func (uc *GetBadgeCountUseCase) Execute(ctx context.Context, in GetBadgeCountInput) (int, error) {
	if err := validateInput(in); err != nil {
		return 0, err
	}
	kind := in.Kind
	if kind == "" {
		kind = notification.BadgeAll
	}
	if !kind.Valid() {
		return 0, notification.ErrInvalidBadgeKind
	}

	total := 0
	if kind == notification.BadgeAll || kind == notification.BadgeNotifications {
		n, err := uc.Notifications.Count(ctx, in.UserID)
		if err != nil {
			return 0, err
		}
		total += n
	}
	if kind == notification.BadgeAll || kind == notification.BadgeMessages {
		n, err := uc.Messages.Count(ctx, in.UserID)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
