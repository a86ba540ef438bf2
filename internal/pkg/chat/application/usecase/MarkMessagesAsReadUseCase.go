package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"
)

// MessageNotificationMarker clears the "message" notifications that point at given messages.
type MessageNotificationMarker interface {
	Execute(ctx context.Context, in notifyUsecase.MarkMessageNotificationsReadInput) ([]notification.Notification, error)
}

type MarkMessagesAsReadInput struct {
	ConversationID string `validate:"required"`
	UserID         string `validate:"required"`
}

type MarkMessagesAsReadOutput struct {
	Messages      int `json:"messages"`
	Notifications int `json:"notifications"`
}

// MarkMessagesAsReadUseCase runs two independent steps, messages first and
// then the matching notifications. They are not atomic: when the second step
// fails the message counter is already cleared and the notification counter
// catches up on the next call. Only members may mark a conversation read; an
// unknown conversation has no members and nothing to mark.
type MarkMessagesAsReadUseCase struct {
	Repo          repository.ChatRepository
	Notifications MessageNotificationMarker
	Feed          changefeed.Publisher
	Log           *logger.Logger
}

func NewMarkMessagesAsReadUseCase(repo repository.ChatRepository, marker MessageNotificationMarker, feed changefeed.Publisher, log *logger.Logger) *MarkMessagesAsReadUseCase {
	return &MarkMessagesAsReadUseCase{Repo: repo, Notifications: marker, Feed: feed, Log: log}
}

func (uc *MarkMessagesAsReadUseCase) Execute(ctx context.Context, in MarkMessagesAsReadInput) (*MarkMessagesAsReadOutput, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	members, err := uc.Repo.ListMembers(ctx, []string{in.ConversationID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(members) == 0 {
		return &MarkMessagesAsReadOutput{}, nil
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ProfileID)
	}
	if !chat.NewChat(chat.Conversation{ID: in.ConversationID}, ids).HasMember(in.UserID) {
		return nil, chat.ErrNotParticipant
	}

	updated, err := uc.Repo.MarkMessagesRead(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	emitMessages(ctx, uc.Feed, uc.Log, changefeed.OpUpdate, updated...)
	out := &MarkMessagesAsReadOutput{Messages: len(updated)}

	if uc.Notifications == nil {
		return out, nil
	}
	msgIDs, err := uc.Repo.ListMessageIDs(ctx, in.ConversationID)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	cleared, err := uc.Notifications.Execute(ctx, notifyUsecase.MarkMessageNotificationsReadInput{
		RecipientID: in.UserID,
		MessageIDs:  msgIDs,
	})
	if err != nil {
		return out, err
	}
	out.Notifications = len(cleared)
	return out, nil
}
