package usecase

import (
	"context"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type NotifyLeaveResponseInput struct {
	HRID           string `json:"hr_id" validate:"required"`
	EmployeeID     string `json:"employee_id" validate:"required"`
	LeaveRequestID string `json:"leave_request_id" validate:"required"`
	Status         string `json:"status" validate:"required"`
}

// NotifyLeaveResponseUseCase tells the requesting employee about an HR decision.
type NotifyLeaveResponseUseCase struct {
	Repo repository.NotificationRepository
	Feed changefeed.Publisher
	Log  *logger.Logger
}

func NewNotifyLeaveResponseUseCase(repo repository.NotificationRepository, feed changefeed.Publisher, log *logger.Logger) *NotifyLeaveResponseUseCase {
	return &NotifyLeaveResponseUseCase{Repo: repo, Feed: feed, Log: log}
}

func (uc *NotifyLeaveResponseUseCase) Execute(ctx context.Context, in NotifyLeaveResponseInput) ([]notification.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	ref := in.LeaveRequestID
	d := dispatcher{repo: uc.Repo, feed: uc.Feed, log: uc.Log}
	return d.fanOut(ctx, []string{in.EmployeeID}, in.HRID,
		notification.TypeLeaveResponse, "Your leave request has been "+in.Status,
		&ref, notification.Ref(notification.RefLeaveRequest))
}
