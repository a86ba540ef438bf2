package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type MarkMessageNotificationsReadInput struct {
	RecipientID string `validate:"required"`
	MessageIDs  []string
}

// MarkMessageNotificationsReadUseCase flips the recipient's unread "message"
// notifications whose reference is one of the given messages.
type MarkMessageNotificationsReadUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewMarkMessageNotificationsReadUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *MarkMessageNotificationsReadUseCase {
	return &MarkMessageNotificationsReadUseCase{Repo: repo, Feed: feed, Log: log}
}

func (uc *MarkMessageNotificationsReadUseCase) Execute(ctx context.Context, in MarkMessageNotificationsReadInput) ([]notification.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if len(in.MessageIDs) == 0 {
		return []notification.Notification{}, nil
	}
	changed, err := uc.Repo.MarkReadByReferences(ctx, in.RecipientID, notification.TypeMessage, notification.RefMessage, in.MessageIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	publish(ctx, uc.Feed, uc.Log, changefeed.OpUpdate, changed...)
	return changed, nil
}
