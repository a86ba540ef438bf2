package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// CreateDirectConversationController opens (or reuses) the caller's 1:1 thread with another profile.
type CreateDirectConversationController struct {
	UC *usecase.CreateDirectConversationUseCase
}

func NewCreateDirectConversationController(uc *usecase.CreateDirectConversationUseCase) *CreateDirectConversationController {
	return &CreateDirectConversationController{UC: uc}
}

type createDirectRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *CreateDirectConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createDirectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		out, err := h.UC.Execute(ctx, usecase.CreateDirectConversationInput{
			UserID:      auth.UserID(c),
			OtherUserID: req.UserID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		if out.IsNew {
			status = http.StatusCreated
		}
		c.JSON(status, out)
	}
}
