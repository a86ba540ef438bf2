package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	directoryDomain "go-hrdesk/internal/pkg/directory/application/domain"
	directory "go-hrdesk/internal/pkg/directory/persistence/repository/port"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

type NotifyLeaveRequestInput struct {
	EmployeeID     string `json:"employee_id" validate:"required"`
	LeaveRequestID string `json:"leave_request_id" validate:"required"`
	Summary        string `json:"summary"`
}

// NotifyLeaveRequestUseCase tells every HR manager, other than the requester, about a new leave request.
type NotifyLeaveRequestUseCase struct {
	Repo      repository.NotificationRepository
	Directory directory.ProfileRepository
	Feed      changefeed.Publisher
	Log       *logger.Logger
}

func NewNotifyLeaveRequestUseCase(repo repository.NotificationRepository, dir directory.ProfileRepository, feed changefeed.Publisher, log *logger.Logger) *NotifyLeaveRequestUseCase {
	return &NotifyLeaveRequestUseCase{Repo: repo, Directory: dir, Feed: feed, Log: log}
}

func (uc *NotifyLeaveRequestUseCase) Execute(ctx context.Context, in NotifyLeaveRequestInput) ([]notification.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	managers, err := uc.Directory.ListByRole(ctx, directoryDomain.RoleHRManager)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	ids := make([]string, 0, len(managers))
	for _, m := range managers {
		ids = append(ids, m.ID)
	}

	content := "New leave request submitted"
	if s := strings.TrimSpace(in.Summary); s != "" {
		content += ": " + s
	}
	ref := in.LeaveRequestID
	d := dispatcher{repo: uc.Repo, feed: uc.Feed, log: uc.Log}
	return d.fanOut(ctx, except(ids, in.EmployeeID), in.EmployeeID,
		notification.TypeLeaveRequest, content, &ref, notification.Ref(notification.RefLeaveRequest))
}
