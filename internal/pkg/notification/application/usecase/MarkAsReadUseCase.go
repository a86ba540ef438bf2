package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

// MarkAsReadInput scopes the update to RecipientID when it is set.
type MarkAsReadInput struct {
	NotificationID string `validate:"required"`
	RecipientID    string
}

type MarkAsReadUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewMarkAsReadUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *MarkAsReadUseCase {
	return &MarkAsReadUseCase{Repo: repo, Feed: feed, Log: log}
}

// Execute reports whether a notification changed. Already-read and unknown ids report false.
func (uc *MarkAsReadUseCase) Execute(ctx context.Context, in MarkAsReadInput) (bool, error) {
	if err := validateInput(in); err != nil {
		return false, err
	}
	n, err := uc.Repo.MarkRead(ctx, in.NotificationID, in.RecipientID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if n == nil {
		return false, nil
	}
	publish(ctx, uc.Feed, uc.Log, changefeed.OpUpdate, *n)
	return true, nil
}
