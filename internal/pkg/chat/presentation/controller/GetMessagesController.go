package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// GetMessagesController handles fetching messages by conversation
type GetMessagesController struct {
	UC *usecase.GetConversationMessagesUseCase
}

func NewGetMessagesController(uc *usecase.GetConversationMessagesUseCase) *GetMessagesController {
	return &GetMessagesController{UC: uc}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		msgs, err := h.UC.Execute(ctx, usecase.GetConversationMessagesInput{ConversationID: conversationID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"conversation_id": conversationID,
			"messages":        msgs,
		})
	}
}
