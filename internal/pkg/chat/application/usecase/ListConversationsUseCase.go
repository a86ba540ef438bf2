package usecase

import (
	"context"
	"fmt"

	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
	directoryDomain "go-hrdesk/internal/pkg/directory/application/domain"
	directory "go-hrdesk/internal/pkg/directory/persistence/repository/port"
)

type ListConversationsInput struct {
	UserID string `validate:"required"`
}

// ListConversationsUseCase builds the user's conversation list, most recently active first.
type ListConversationsUseCase struct {
	Repo      repository.ChatRepository
	Directory directory.ProfileRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository, dir directory.ProfileRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo, Directory: dir}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]chat.ConversationSummary, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	ids, err := uc.Repo.ListConversationIDsForProfile(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(ids) == 0 {
		return []chat.ConversationSummary{}, nil
	}

	convs, err := uc.Repo.ListConversationsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	members, err := uc.Repo.ListMembers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	latest, err := uc.Repo.LatestMessages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	profileIDs := make([]string, 0, len(members))
	for _, m := range members {
		profileIDs = append(profileIDs, m.ProfileID)
	}
	profiles, err := uc.Directory.GetByIDs(ctx, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	byID := directoryDomain.Index(profiles)

	byConv := make(map[string][]directoryDomain.Summary, len(convs))
	for _, m := range members {
		if p, ok := byID[m.ProfileID]; ok {
			byConv[m.ConversationID] = append(byConv[m.ConversationID], p.Summary())
		}
	}

	out := make([]chat.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		s := chat.ConversationSummary{
			Conversation: c,
			Members:      byConv[c.ID],
			DisplayName:  chat.DisplayNameFor(c, byConv[c.ID], in.UserID),
		}
		if s.Members == nil {
			s.Members = []directoryDomain.Summary{}
		}
		if m, ok := latest[c.ID]; ok {
			m := m
			s.LatestMessage = &m
		}
		out = append(out, s)
	}
	return out, nil
}
