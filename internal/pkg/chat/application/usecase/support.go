package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func orDefault(l *logger.Logger) *logger.Logger {
	if l == nil {
		return logger.Default()
	}
	return l
}

func messageKeys(m chat.Message) map[string]string {
	return map[string]string{
		"id":              m.ID,
		"conversation_id": m.ConversationID,
		"sender_id":       m.SenderID,
	}
}

// emitMessages publishes one event per row; failures are logged because the
// write they describe has already happened.
func emitMessages(ctx context.Context, feed changefeed.Publisher, log *logger.Logger, op changefeed.Op, msgs ...chat.Message) {
	for _, m := range msgs {
		if err := changefeed.Emit(ctx, feed, changefeed.TableMessages, op, messageKeys(m), m); err != nil {
			orDefault(log).Errorf(err, "chat: publish message %s %s", op, m.ID)
		}
	}
}

func emitConversation(ctx context.Context, feed changefeed.Publisher, log *logger.Logger, op changefeed.Op, c chat.Conversation) {
	keys := map[string]string{"id": c.ID}
	if err := changefeed.Emit(ctx, feed, changefeed.TableConversations, op, keys, c); err != nil {
		orDefault(log).Errorf(err, "chat: publish conversation %s %s", op, c.ID)
	}
}

func emitMember(ctx context.Context, feed changefeed.Publisher, log *logger.Logger, m chat.Member) {
	keys := map[string]string{"conversation_id": m.ConversationID, "profile_id": m.ProfileID}
	if err := changefeed.Emit(ctx, feed, changefeed.TableConversationMembers, changefeed.OpInsert, keys, m); err != nil {
		orDefault(log).Errorf(err, "chat: publish member %s/%s", m.ConversationID, m.ProfileID)
	}
}
