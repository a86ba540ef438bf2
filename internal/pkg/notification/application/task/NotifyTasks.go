package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"go-hrdesk/internal/infrastructure/logger"
	qport "go-hrdesk/internal/infrastructure/queue/port"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	"go-hrdesk/internal/pkg/notification/application/usecase"
)

// Queue task names for the notification fan-out helpers.
const (
	LeaveRequestTaskType  = "notify:leave_request"
	LeaveResponseTaskType = "notify:leave_response"
	TaskAssignedTaskType  = "notify:task_assigned"
	AnnouncementTaskType  = "notify:announcement"
)

// QueueName is the asynq queue the fan-out tasks are enqueued on.
const QueueName = "notifications"

const taskTimeout = 10 * time.Second

// Handlers are the use cases the worker runs for each task type.
type Handlers struct {
	LeaveRequest  *usecase.NotifyLeaveRequestUseCase
	LeaveResponse *usecase.NotifyLeaveResponseUseCase
	TaskAssigned  *usecase.NotifyTaskAssignedUseCase
	Announcement  *usecase.NotifyAnnouncementUseCase
}

// RegisterNotifyTasks binds every fan-out task to srv.
func RegisterNotifyTasks(srv qport.Server, h Handlers, log *logger.Logger) {
	if log == nil {
		log = logger.Default()
	}
	register(srv, LeaveRequestTaskType, log, h.LeaveRequest.Execute)
	register(srv, LeaveResponseTaskType, log, h.LeaveResponse.Execute)
	register(srv, TaskAssignedTaskType, log, h.TaskAssigned.Execute)
	register(srv, AnnouncementTaskType, log, h.Announcement.Execute)
}

func register[In any](srv qport.Server, taskType string, log *logger.Logger, run func(context.Context, In) ([]notification.Notification, error)) {
	srv.Register(taskType, func(ctx context.Context, t qport.Task) error {
		var in In
		if err := json.Unmarshal(t.Payload, &in); err != nil {
			// malformed payload: retrying cannot help
			return fmt.Errorf("%s: decode payload: %v: %w", taskType, err, asynq.SkipRetry)
		}

		ctx, cancel := context.WithTimeout(ctx, taskTimeout)
		defer cancel()

		created, err := run(ctx, in)
		if err != nil {
			if !errors.Is(err, usecase.ErrPersistence) {
				return fmt.Errorf("%s: %v: %w", taskType, err, asynq.SkipRetry)
			}
			return err
		}
		log.Debugf("%s: created %d notifications", taskType, len(created))
		return nil
	})
}
