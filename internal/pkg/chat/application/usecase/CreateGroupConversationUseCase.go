package usecase

import (
	"context"
	"time"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
)

type CreateGroupConversationInput struct {
	Title     string
	MemberIDs []string
}

// CreateGroupConversationUseCase always creates; groups are never deduplicated.
type CreateGroupConversationUseCase struct {
	Repo repository.ChatRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewCreateGroupConversationUseCase(repo repository.ChatRepository, feed changefeed.Publisher, log *logger.Logger) *CreateGroupConversationUseCase {
	return &CreateGroupConversationUseCase{Repo: repo, Feed: feed, Log: log}
}

func (uc *CreateGroupConversationUseCase) Execute(ctx context.Context, in CreateGroupConversationInput) (*chat.Conversation, error) {
	conv, members, err := chat.NewGroupConversation(in.Title, in.MemberIDs, time.Now())
	if err != nil {
		return nil, err
	}
	created, err := createWithMembers(ctx, uc.Repo, uc.Feed, uc.Log, conv, members)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
