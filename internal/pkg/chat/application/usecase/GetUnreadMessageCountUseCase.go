package usecase

import (
	"context"
	"fmt"

	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
)

type GetUnreadMessageCountInput struct {
	UserID string `validate:"required"`
}

// GetUnreadMessageCountUseCase counts unread messages from others across all of the user's conversations.
type GetUnreadMessageCountUseCase struct {
	Repo repository.ChatRepository
}

func NewGetUnreadMessageCountUseCase(repo repository.ChatRepository) *GetUnreadMessageCountUseCase {
	return &GetUnreadMessageCountUseCase{Repo: repo}
}

func (uc *GetUnreadMessageCountUseCase) Execute(ctx context.Context, in GetUnreadMessageCountInput) (int, error) {
	if err := validateInput(in); err != nil {
		return 0, err
	}
	ids, err := uc.Repo.ListConversationIDsForProfile(ctx, in.UserID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	n, err := uc.Repo.CountUnreadMessages(ctx, ids, in.UserID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return n, nil
}

// Count lets the badge use case treat this as one of its counters.
func (uc *GetUnreadMessageCountUseCase) Count(ctx context.Context, userID string) (int, error) {
	return uc.Execute(ctx, GetUnreadMessageCountInput{UserID: userID})
}
