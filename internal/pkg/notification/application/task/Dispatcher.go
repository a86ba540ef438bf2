package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	qport "go-hrdesk/internal/infrastructure/queue/port"
	"go-hrdesk/internal/pkg/notification/application/usecase"
)

// Dispatcher enqueues fan-out tasks on behalf of external features.
type Dispatcher struct {
	client qport.Client
}

func NewDispatcher(client qport.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) LeaveRequest(ctx context.Context, in usecase.NotifyLeaveRequestInput) (string, error) {
	return d.enqueue(ctx, LeaveRequestTaskType, in)
}

func (d *Dispatcher) LeaveResponse(ctx context.Context, in usecase.NotifyLeaveResponseInput) (string, error) {
	return d.enqueue(ctx, LeaveResponseTaskType, in)
}

func (d *Dispatcher) TaskAssigned(ctx context.Context, in usecase.NotifyTaskAssignedInput) (string, error) {
	return d.enqueue(ctx, TaskAssignedTaskType, in)
}

func (d *Dispatcher) Announcement(ctx context.Context, in usecase.NotifyAnnouncementInput) (string, error) {
	return d.enqueue(ctx, AnnouncementTaskType, in)
}

func (d *Dispatcher) enqueue(ctx context.Context, taskType string, payload any) (string, error) {
	if d == nil || d.client == nil {
		return "", errors.New("notification dispatcher: nil queue client")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: encode payload: %w", taskType, err)
	}
	return d.client.Enqueue(ctx, qport.Task{Type: taskType, Payload: b}, qport.EnqueueOption{
		Queue:    QueueName,
		MaxRetry: 5,
		Timeout:  taskTimeout,
	})
}
