package http

import (
	"go-hrdesk/internal/pkg/notification/application/task"
	"go-hrdesk/internal/pkg/notification/application/usecase"
	"go-hrdesk/internal/pkg/notification/presentation/controller"

	"github.com/gin-gonic/gin"
)

type UseCases struct {
	List       *usecase.ListNotificationsUseCase
	Create     *usecase.CreateNotificationUseCase
	MarkAsRead *usecase.MarkAsReadUseCase
	MarkAll    *usecase.MarkAllAsReadUseCase
	Delete     *usecase.DeleteNotificationUseCase
	Badge      *usecase.GetBadgeCountUseCase
}

// RegisterRoutes registers notification endpoints and the HR event intake under g.
func RegisterRoutes(g *gin.RouterGroup, uc UseCases, dispatcher *task.Dispatcher) {
	g.GET("/notifications", controller.NewListNotificationsController(uc.List).Handle())
	g.POST("/notifications", controller.NewCreateNotificationController(uc.Create).Handle())
	g.GET("/notifications/unread-count", controller.NewBadgeCountController(uc.Badge).Handle())
	g.POST("/notifications/read-all", controller.NewMarkAllAsReadController(uc.MarkAll).Handle())
	g.POST("/notifications/:notificationId/read", controller.NewMarkAsReadController(uc.MarkAsRead).Handle())
	g.DELETE("/notifications/:notificationId", controller.NewDeleteNotificationController(uc.Delete).Handle())

	events := controller.NewEnqueueEventController(dispatcher)
	g.POST("/events/leave-requests", events.LeaveRequest())
	g.POST("/events/leave-responses", events.LeaveResponse())
	g.POST("/events/task-assignments", events.TaskAssigned())
	g.POST("/events/announcements", events.Announcement())
}
