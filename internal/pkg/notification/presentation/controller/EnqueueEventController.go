package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/notification/application/task"
	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

// EnqueueEventController accepts HR feature events and queues the matching
// notification fan-out. The acting user is always taken from the token.
type EnqueueEventController struct {
	Dispatcher *task.Dispatcher
}

func NewEnqueueEventController(d *task.Dispatcher) *EnqueueEventController {
	return &EnqueueEventController{Dispatcher: d}
}

type leaveRequestEvent struct {
	LeaveRequestID string `json:"leave_request_id" binding:"required"`
	Summary        string `json:"summary"`
}

type leaveResponseEvent struct {
	EmployeeID     string `json:"employee_id" binding:"required"`
	LeaveRequestID string `json:"leave_request_id" binding:"required"`
	Status         string `json:"status" binding:"required"`
}

type taskAssignedEvent struct {
	AssigneeID string `json:"assignee_id" binding:"required"`
	TaskID     string `json:"task_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
}

type announcementEvent struct {
	AnnouncementID string `json:"announcement_id" binding:"required"`
	Title          string `json:"title" binding:"required"`
}

func (h *EnqueueEventController) LeaveRequest() gin.HandlerFunc {
	return enqueue(func(ctx context.Context, actor string, ev leaveRequestEvent) (string, error) {
		return h.Dispatcher.LeaveRequest(ctx, usecase.NotifyLeaveRequestInput{
			EmployeeID:     actor,
			LeaveRequestID: ev.LeaveRequestID,
			Summary:        ev.Summary,
		})
	})
}

func (h *EnqueueEventController) LeaveResponse() gin.HandlerFunc {
	return enqueue(func(ctx context.Context, actor string, ev leaveResponseEvent) (string, error) {
		return h.Dispatcher.LeaveResponse(ctx, usecase.NotifyLeaveResponseInput{
			HRID:           actor,
			EmployeeID:     ev.EmployeeID,
			LeaveRequestID: ev.LeaveRequestID,
			Status:         ev.Status,
		})
	})
}

func (h *EnqueueEventController) TaskAssigned() gin.HandlerFunc {
	return enqueue(func(ctx context.Context, actor string, ev taskAssignedEvent) (string, error) {
		return h.Dispatcher.TaskAssigned(ctx, usecase.NotifyTaskAssignedInput{
			ManagerID:  actor,
			AssigneeID: ev.AssigneeID,
			TaskID:     ev.TaskID,
			Title:      ev.Title,
		})
	})
}

func (h *EnqueueEventController) Announcement() gin.HandlerFunc {
	return enqueue(func(ctx context.Context, actor string, ev announcementEvent) (string, error) {
		return h.Dispatcher.Announcement(ctx, usecase.NotifyAnnouncementInput{
			SenderID:       actor,
			AnnouncementID: ev.AnnouncementID,
			Title:          ev.Title,
		})
	})
}

func enqueue[E any](run func(ctx context.Context, actor string, ev E) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ev E
		if err := c.ShouldBindJSON(&ev); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		id, err := run(ctx, auth.UserID(c), ev)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue notification task"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"task_id": id})
	}
}
