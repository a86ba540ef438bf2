package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

type CreateGroupConversationController struct {
	UC *usecase.CreateGroupConversationUseCase
}

func NewCreateGroupConversationController(uc *usecase.CreateGroupConversationUseCase) *CreateGroupConversationController {
	return &CreateGroupConversationController{UC: uc}
}

type createGroupRequest struct {
	Title     string   `json:"title" binding:"required"`
	MemberIDs []string `json:"member_ids" binding:"required,min=1"`
}

// Handle creates a group; the caller is always one of its members.
func (h *CreateGroupConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		conv, err := h.UC.Execute(ctx, usecase.CreateGroupConversationInput{
			Title:     req.Title,
			MemberIDs: append([]string{auth.UserID(c)}, req.MemberIDs...),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, conv)
	}
}
