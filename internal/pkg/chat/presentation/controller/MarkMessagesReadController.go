package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

type MarkMessagesReadController struct {
	UC *usecase.MarkMessagesAsReadUseCase
}

func NewMarkMessagesReadController(uc *usecase.MarkMessagesAsReadUseCase) *MarkMessagesReadController {
	return &MarkMessagesReadController{UC: uc}
}

func (h *MarkMessagesReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		out, err := h.UC.Execute(ctx, usecase.MarkMessagesAsReadInput{
			ConversationID: c.Param("conversationId"),
			UserID:         auth.UserID(c),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
