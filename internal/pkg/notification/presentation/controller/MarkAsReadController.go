package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

type MarkAsReadController struct {
	UC *usecase.MarkAsReadUseCase
}

func NewMarkAsReadController(uc *usecase.MarkAsReadUseCase) *MarkAsReadController {
	return &MarkAsReadController{UC: uc}
}

func (h *MarkAsReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("notificationId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		changed, err := h.UC.Execute(ctx, usecase.MarkAsReadInput{NotificationID: id, RecipientID: auth.UserID(c)})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "changed": changed})
	}
}
