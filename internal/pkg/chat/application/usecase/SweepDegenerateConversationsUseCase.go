package usecase

import (
	"context"
	"fmt"
	"time"

	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
)

// SweepDegenerateConversationsUseCase reports direct conversations whose
// member count is not two, such as orphans of a failed compensation. It only logs.
type SweepDegenerateConversationsUseCase struct {
	Repo repository.ChatRepository
	Log  *logger.Logger
}

func NewSweepDegenerateConversationsUseCase(repo repository.ChatRepository, log *logger.Logger) *SweepDegenerateConversationsUseCase {
	return &SweepDegenerateConversationsUseCase{Repo: repo, Log: log}
}

func (uc *SweepDegenerateConversationsUseCase) Execute(ctx context.Context) ([]chat.MemberCount, error) {
	found, err := uc.Repo.CountDegenerateDirect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	log := orDefault(uc.Log)
	for _, mc := range found {
		log.Warnf("chat: direct conversation %s has %d members (created %s)",
			mc.ConversationID, mc.Members, mc.CreatedAt.Format(time.RFC3339))
	}
	return found, nil
}
