package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type DeleteNotificationInput struct {
	NotificationID string `validate:"required"`
	RecipientID    string
}

type DeleteNotificationUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewDeleteNotificationUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{Repo: repo, Feed: feed, Log: log}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, in DeleteNotificationInput) (bool, error) {
	if err := validateInput(in); err != nil {
		return false, err
	}
	n, err := uc.Repo.Delete(ctx, in.NotificationID, in.RecipientID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if n == nil {
		return false, nil
	}
	publish(ctx, uc.Feed, uc.Log, changefeed.OpDelete, *n)
	return true, nil
}
