package usecase

import (
	"context"
	"fmt"

	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
	directoryDomain "go-hrdesk/internal/pkg/directory/application/domain"
	directory "go-hrdesk/internal/pkg/directory/persistence/repository/port"
)

type GetConversationMessagesInput struct {
	ConversationID string `validate:"required"`
}

// GetConversationMessagesUseCase returns the whole thread, oldest first, with
// each sender's display profile. Unknown conversations yield an empty slice.
type GetConversationMessagesUseCase struct {
	Repo      repository.ChatRepository
	Directory directory.ProfileRepository
}

func NewGetConversationMessagesUseCase(repo repository.ChatRepository, dir directory.ProfileRepository) *GetConversationMessagesUseCase {
	return &GetConversationMessagesUseCase{Repo: repo, Directory: dir}
}

func (uc *GetConversationMessagesUseCase) Execute(ctx context.Context, in GetConversationMessagesInput) ([]chat.MessageWithSender, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(msgs) == 0 {
		return []chat.MessageWithSender{}, nil
	}

	senderIDs := make([]string, 0, len(msgs))
	for _, m := range msgs {
		senderIDs = append(senderIDs, m.SenderID)
	}
	profiles, err := uc.Directory.GetByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	byID := directoryDomain.Index(profiles)

	out := make([]chat.MessageWithSender, 0, len(msgs))
	for _, m := range msgs {
		item := chat.MessageWithSender{Message: m}
		if p, ok := byID[m.SenderID]; ok {
			s := p.Summary()
			item.Sender = &s
		}
		out = append(out, item)
	}
	return out, nil
}
