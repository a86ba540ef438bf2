package usecase

import (
	"context"
	"fmt"
	"time"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
)

type AddMemberInput struct {
	ConversationID string `validate:"required"`
	ProfileID      string `validate:"required"`
}

// AddMemberUseCase is idempotent: re-adding an existing member reports false.
// Direct conversations keep their two members and reject the call.
type AddMemberUseCase struct {
	Repo repository.ChatRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewAddMemberUseCase(repo repository.ChatRepository, feed changefeed.Publisher, log *logger.Logger) *AddMemberUseCase {
	return &AddMemberUseCase{Repo: repo, Feed: feed, Log: log}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, in AddMemberInput) (bool, error) {
	if err := validateInput(in); err != nil {
		return false, err
	}
	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return false, chat.ErrConversationNotFound
	}
	if !conv.IsGroup {
		return false, chat.ErrNotGroup
	}

	m := chat.Member{ConversationID: conv.ID, ProfileID: in.ProfileID, JoinedAt: time.Now().UTC()}
	added, err := uc.Repo.AddMember(ctx, m)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if added {
		emitMember(ctx, uc.Feed, uc.Log, m)
	}
	return added, nil
}
