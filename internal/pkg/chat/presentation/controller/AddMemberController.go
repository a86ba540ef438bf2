package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

type AddMemberController struct {
	UC *usecase.AddMemberUseCase
}

func NewAddMemberController(uc *usecase.AddMemberUseCase) *AddMemberController {
	return &AddMemberController{UC: uc}
}

type addMemberRequest struct {
	ProfileID string `json:"profile_id" binding:"required"`
}

func (h *AddMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		var req addMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		added, err := h.UC.Execute(ctx, usecase.AddMemberInput{ConversationID: conversationID, ProfileID: req.ProfileID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"conversation_id": conversationID,
			"profile_id":      req.ProfileID,
			"added":           added,
		})
	}
}
