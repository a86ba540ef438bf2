package usecase

import (
	"context"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type NotifyTaskAssignedInput struct {
	ManagerID  string `json:"manager_id" validate:"required"`
	AssigneeID string `json:"assignee_id" validate:"required"`
	TaskID     string `json:"task_id" validate:"required"`
	Title      string `json:"title" validate:"required"`
}

type NotifyTaskAssignedUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewNotifyTaskAssignedUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *NotifyTaskAssignedUseCase {
	return &NotifyTaskAssignedUseCase{Repo: repo, Feed: feed, Log: log}
}

func (uc *NotifyTaskAssignedUseCase) Execute(ctx context.Context, in NotifyTaskAssignedInput) ([]notification.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	ref := in.TaskID
	d := dispatcher{repo: uc.Repo, feed: uc.Feed, log: uc.Log}
	return d.fanOut(ctx, []string{in.AssigneeID}, in.ManagerID,
		notification.TypeTask, "You have been assigned a new task: "+in.Title,
		&ref, notification.Ref(notification.RefTask))
}
