package controller

import (
	"context"
	"net/http"
	"strconv"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

// ListNotificationsController serves the caller's newest notifications.
type ListNotificationsController struct {
	UC *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(uc *usecase.ListNotificationsUseCase) *ListNotificationsController {
	return &ListNotificationsController{UC: uc}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
				return
			}
			limit = n
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		items, err := h.UC.Execute(ctx, usecase.ListNotificationsInput{RecipientID: auth.UserID(c), Limit: limit})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": items})
	}
}
