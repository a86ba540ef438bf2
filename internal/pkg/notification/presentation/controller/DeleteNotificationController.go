package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

type DeleteNotificationController struct {
	UC *usecase.DeleteNotificationUseCase
}

func NewDeleteNotificationController(uc *usecase.DeleteNotificationUseCase) *DeleteNotificationController {
	return &DeleteNotificationController{UC: uc}
}

// Handle deletes one of the caller's notifications; other recipients' rows are reported as missing.
func (h *DeleteNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		deleted, err := h.UC.Execute(ctx, usecase.DeleteNotificationInput{
			NotificationID: c.Param("notificationId"),
			RecipientID:    auth.UserID(c),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
