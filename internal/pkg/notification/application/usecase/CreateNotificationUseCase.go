package usecase

import (
	"context"
	"fmt"
	"time"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

// CreateNotificationInput mirrors a single notification row. Both reference
// fields may be nil for system notifications.
type CreateNotificationInput struct {
	RecipientID   string  `validate:"required"`
	SenderID      string
	Type          string  `validate:"required"`
	Content       string  `validate:"required"`
	ReferenceID   *string
	ReferenceType *string
}

type CreateNotificationUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewCreateNotificationUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *CreateNotificationUseCase {
	return &CreateNotificationUseCase{Repo: repo, Feed: feed, Log: log}
}

// Execute inserts one notification; it has no other side effects besides the change event.
func (uc *CreateNotificationUseCase) Execute(ctx context.Context, in CreateNotificationInput) (*notification.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var refType *notification.ReferenceType
	if in.ReferenceType != nil {
		refType = notification.Ref(notification.ReferenceType(*in.ReferenceType))
	}
	n, err := notification.New(in.RecipientID, in.SenderID, notification.Type(in.Type), in.Content, in.ReferenceID, refType, time.Now())
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	publish(ctx, uc.Feed, uc.Log, changefeed.OpInsert, saved)
	return &saved, nil
}
