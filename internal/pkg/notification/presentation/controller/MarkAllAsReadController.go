package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

type MarkAllAsReadController struct {
	UC *usecase.MarkAllAsReadUseCase
}

func NewMarkAllAsReadController(uc *usecase.MarkAllAsReadUseCase) *MarkAllAsReadController {
	return &MarkAllAsReadController{UC: uc}
}

func (h *MarkAllAsReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		n, err := h.UC.Execute(ctx, usecase.MarkAllAsReadInput{RecipientID: auth.UserID(c)})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": n})
	}
}
