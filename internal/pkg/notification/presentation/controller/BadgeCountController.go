package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

// BadgeCountController answers GET /notifications/unread-count?kind=all|messages|notifications.
type BadgeCountController struct {
	UC *usecase.GetBadgeCountUseCase
}

func NewBadgeCountController(uc *usecase.GetBadgeCountUseCase) *BadgeCountController {
	return &BadgeCountController{UC: uc}
}

func (h *BadgeCountController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := notification.BadgeKind(c.DefaultQuery("kind", string(notification.BadgeAll)))

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		n, err := h.UC.Execute(ctx, usecase.GetBadgeCountInput{UserID: auth.UserID(c), Kind: kind})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "count": n})
	}
}
