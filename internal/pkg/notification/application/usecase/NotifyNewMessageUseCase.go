package usecase

import (
	"context"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

const newMessageContent = "New message received"

type NotifyNewMessageInput struct {
	MessageID    string `validate:"required"`
	SenderID     string `validate:"required"`
	RecipientIDs []string
}

// NotifyNewMessageUseCase fans a sent message out to the other conversation members.
type NotifyNewMessageUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewNotifyNewMessageUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *NotifyNewMessageUseCase {
	return &NotifyNewMessageUseCase{Repo: repo, Feed: feed, Log: log}
}

func (uc *NotifyNewMessageUseCase) Execute(ctx context.Context, in NotifyNewMessageInput) ([]notification.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	d := dispatcher{repo: uc.Repo, feed: uc.Feed, log: uc.Log}
	ref := in.MessageID
	return d.fanOut(ctx, except(in.RecipientIDs, in.SenderID), in.SenderID,
		notification.TypeMessage, newMessageContent, &ref, notification.Ref(notification.RefMessage))
}
