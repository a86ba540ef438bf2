package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

type UnreadMessageCountController struct {
	UC *usecase.GetUnreadMessageCountUseCase
}

func NewUnreadMessageCountController(uc *usecase.GetUnreadMessageCountUseCase) *UnreadMessageCountController {
	return &UnreadMessageCountController{UC: uc}
}

func (h *UnreadMessageCountController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		n, err := h.UC.Execute(ctx, usecase.GetUnreadMessageCountInput{UserID: auth.UserID(c)})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}
