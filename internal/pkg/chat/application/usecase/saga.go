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

// createWithMembers inserts a conversation and then its memberships. If a
// membership insert fails the conversation is deleted again; if that delete
// fails too the orphan stays for the degenerate-conversation sweep.
func createWithMembers(ctx context.Context, repo repository.ChatRepository, feed changefeed.Publisher, log *logger.Logger, c chat.Conversation, memberIDs []string) (chat.Conversation, error) {
	created, err := repo.CreateConversation(ctx, c)
	if err != nil {
		return chat.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	joined := make([]chat.Member, 0, len(memberIDs))
	for _, id := range memberIDs {
		m := chat.Member{ConversationID: created.ID, ProfileID: id, JoinedAt: created.CreatedAt}
		if _, err := repo.AddMember(ctx, m); err != nil {
			compensate(ctx, repo, log, created.ID, err)
			return chat.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		joined = append(joined, m)
	}

	emitConversation(ctx, feed, log, changefeed.OpInsert, created)
	for _, m := range joined {
		emitMember(ctx, feed, log, m)
	}
	return created, nil
}

func compensate(ctx context.Context, repo repository.ChatRepository, log *logger.Logger, conversationID string, cause error) {
	// the request may already be canceled; the rollback must still run
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	log = orDefault(log)
	if err := repo.DeleteConversation(cctx, conversationID); err != nil {
		log.WithField("conversation_id", conversationID).
			Errorf(err, "chat: compensation failed after %v, conversation left for sweep", cause)
		return
	}
	log.Warnf("chat: rolled back conversation %s after membership failure: %v", conversationID, cause)
}
