package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type MarkAllAsReadInput struct {
	RecipientID string `validate:"required"`
}

type MarkAllAsReadUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewMarkAllAsReadUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *MarkAllAsReadUseCase {
	return &MarkAllAsReadUseCase{Repo: repo, Feed: feed, Log: log}
}

// Execute returns how many notifications were flipped.
func (uc *MarkAllAsReadUseCase) Execute(ctx context.Context, in MarkAllAsReadInput) (int, error) {
	if err := validateInput(in); err != nil {
		return 0, err
	}
	changed, err := uc.Repo.MarkAllRead(ctx, in.RecipientID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	publish(ctx, uc.Feed, uc.Log, changefeed.OpUpdate, changed...)
	return len(changed), nil
}
