package usecase

import (
	"context"
	"fmt"

	directoryDomain "go-hrdesk/internal/pkg/directory/application/domain"
	directory "go-hrdesk/internal/pkg/directory/persistence/repository/port"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type ListNotificationsInput struct {
	RecipientID string `validate:"required"`
	Limit       int    `validate:"gte=0,lte=200"`
}

// ListNotificationsUseCase returns the newest notifications with sender profiles.
type ListNotificationsUseCase struct {
	Repo      repository.NotificationRepository
	Directory directory.ProfileRepository
}

func NewListNotificationsUseCase(repo repository.NotificationRepository, dir directory.ProfileRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Repo: repo, Directory: dir}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, in ListNotificationsInput) ([]notification.WithSender, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	rows, err := uc.Repo.ListByRecipient(ctx, in.RecipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	senderIDs := make([]string, 0, len(rows))
	for _, n := range rows {
		if n.SenderID != "" {
			senderIDs = append(senderIDs, n.SenderID)
		}
	}
	profiles, err := uc.Directory.GetByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	byID := directoryDomain.Index(profiles)

	out := make([]notification.WithSender, 0, len(rows))
	for _, n := range rows {
		item := notification.WithSender{Notification: n}
		if p, ok := byID[n.SenderID]; ok {
			s := p.Summary()
			item.Sender = &s
		}
		item.Headline = notification.Headline(n, item.Sender)
		out = append(out, item)
	}
	return out, nil
}
