package usecase

import (
	"context"
	"fmt"
	"time"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"
)

// MessageNotifier fans a new message out to recipients as notifications.
type MessageNotifier interface {
	Execute(ctx context.Context, in notifyUsecase.NotifyNewMessageInput) ([]notification.Notification, error)
}

type SendMessageInput struct {
	ConversationID string `validate:"required"`
	SenderID       string `validate:"required"`
	Content        string
}

// SendMessageUseCase handles the SendMessage application service
// Hexagonal: depends on repository port, returns domain entity
type SendMessageUseCase struct {
	Repo     repository.ChatRepository
	Notifier MessageNotifier
	Feed     changefeed.Publisher
	Log      *logger.Logger
}

func NewSendMessageUseCase(repo repository.ChatRepository, notifier MessageNotifier, feed changefeed.Publisher, log *logger.Logger) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Notifier: notifier, Feed: feed, Log: log}
}

// Execute persists a message, bumps the conversation and notifies every other
// member. A failed notification fan-out is logged; the message stays sent.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, chat.ErrConversationNotFound
	}
	members, err := uc.Repo.ListMembers(ctx, []string{conv.ID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ProfileID)
	}
	agg := chat.NewChat(*conv, ids)

	msg, err := agg.PostMessage(in.SenderID, in.Content, time.Now())
	if err != nil {
		return nil, err
	}

	// Persist letting the store generate the ID
	saved, err := uc.Repo.SaveMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	log := orDefault(uc.Log)
	if err := uc.Repo.TouchConversation(ctx, conv.ID, saved.CreatedAt); err != nil {
		log.Errorf(err, "chat: bump updated_at of %s", conv.ID)
	} else {
		conv.UpdatedAt = saved.CreatedAt
		emitConversation(ctx, uc.Feed, uc.Log, changefeed.OpUpdate, *conv)
	}
	emitMessages(ctx, uc.Feed, uc.Log, changefeed.OpInsert, saved)

	if uc.Notifier != nil {
		_, err := uc.Notifier.Execute(ctx, notifyUsecase.NotifyNewMessageInput{
			MessageID:    saved.ID,
			SenderID:     saved.SenderID,
			RecipientIDs: agg.Recipients(saved.SenderID),
		})
		if err != nil {
			log.Errorf(err, "chat: notify recipients of message %s", saved.ID)
		}
	}
	return &saved, nil
}
