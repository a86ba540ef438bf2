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

type CreateDirectConversationInput struct {
	UserID      string `validate:"required"`
	OtherUserID string `validate:"required,nefield=UserID"`
}

type CreateDirectConversationOutput struct {
	ConversationID string `json:"conversation_id"`
	IsNew          bool   `json:"is_new"`
}

// CreateDirectConversationUseCase returns the pair's existing direct thread or creates one.
// Two concurrent first calls for the same pair may both create; the finder
// picks the oldest afterwards.
type CreateDirectConversationUseCase struct {
	Repo   repository.ChatRepository
	Finder DirectConversationFinder
	Feed   changefeed.Publisher
	Log    *logger.Logger
}

func NewCreateDirectConversationUseCase(repo repository.ChatRepository, finder DirectConversationFinder, feed changefeed.Publisher, log *logger.Logger) *CreateDirectConversationUseCase {
	if finder == nil {
		finder = NewLinearScanFinder(repo)
	}
	return &CreateDirectConversationUseCase{Repo: repo, Finder: finder, Feed: feed, Log: log}
}

func (uc *CreateDirectConversationUseCase) Execute(ctx context.Context, in CreateDirectConversationInput) (*CreateDirectConversationOutput, error) {
	if err := validateInput(in); err != nil {
		return nil, fmt.Errorf("%w: %w", chat.ErrInvalidMembers, err)
	}
	conv, members, err := chat.NewDirectConversation(in.UserID, in.OtherUserID, time.Now())
	if err != nil {
		return nil, err
	}

	id, found, err := uc.Finder.FindDirect(ctx, members[0], members[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if found {
		return &CreateDirectConversationOutput{ConversationID: id, IsNew: false}, nil
	}

	created, err := createWithMembers(ctx, uc.Repo, uc.Feed, uc.Log, conv, members)
	if err != nil {
		return nil, err
	}
	return &CreateDirectConversationOutput{ConversationID: created.ID, IsNew: true}, nil
}
