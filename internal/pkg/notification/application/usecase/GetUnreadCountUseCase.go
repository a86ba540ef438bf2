package usecase

import (
	"context"
	"fmt"

	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type GetUnreadCountInput struct {
	RecipientID string `validate:"required"`
}

type GetUnreadCountUseCase struct {
	Repo repository.NotificationRepository
}

func NewGetUnreadCountUseCase(repo repository.NotificationRepository) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{Repo: repo}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, in GetUnreadCountInput) (int, error) {
	if err := validateInput(in); err != nil {
		return 0, err
	}
	n, err := uc.Repo.CountUnread(ctx, in.RecipientID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return n, nil
}

// Count is Execute without the input struct, for callers outside this package.
func (uc *GetUnreadCountUseCase) Count(ctx context.Context, recipientID string) (int, error) {
	return uc.Execute(ctx, GetUnreadCountInput{RecipientID: recipientID})
}
