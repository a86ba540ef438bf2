package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

type ListConversationsController struct {
	UC *usecase.ListConversationsUseCase
}

func NewListConversationsController(uc *usecase.ListConversationsUseCase) *ListConversationsController {
	return &ListConversationsController{UC: uc}
}

func (h *ListConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		items, err := h.UC.Execute(ctx, usecase.ListConversationsInput{UserID: auth.UserID(c)})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversations": items})
	}
}
