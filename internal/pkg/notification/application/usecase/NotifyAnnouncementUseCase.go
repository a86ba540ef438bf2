package usecase

import (
	"context"
	"fmt"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	directory "go-hrdesk/internal/pkg/directory/persistence/repository/port"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type NotifyAnnouncementInput struct {
	SenderID       string `json:"sender_id" validate:"required"`
	AnnouncementID string `json:"announcement_id" validate:"required"`
	Title          string `json:"title" validate:"required"`
}

// NotifyAnnouncementUseCase broadcasts an announcement to every profile but its author.
type NotifyAnnouncementUseCase struct {
	Repo      repository.NotificationRepository
	Directory directory.ProfileRepository
	Feed      changefeed.Publisher
	Log       *logger.Logger
}

func NewNotifyAnnouncementUseCase(repo repository.NotificationRepository, dir directory.ProfileRepository, feed changefeed.Publisher, log *logger.Logger) *NotifyAnnouncementUseCase {
	return &NotifyAnnouncementUseCase{Repo: repo, Directory: dir, Feed: feed, Log: log}
}

func (uc *NotifyAnnouncementUseCase) Execute(ctx context.Context, in NotifyAnnouncementInput) ([]notification.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	everyone, err := uc.Directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	ids := make([]string, 0, len(everyone))
	for _, p := range everyone {
		ids = append(ids, p.ID)
	}
	ref := in.AnnouncementID
	d := dispatcher{repo: uc.Repo, feed: uc.Feed, log: uc.Log}
	return d.fanOut(ctx, except(ids, in.SenderID), in.SenderID,
		notification.TypeAnnouncement, in.Title, &ref, notification.Ref(notification.RefAnnouncement))
}
