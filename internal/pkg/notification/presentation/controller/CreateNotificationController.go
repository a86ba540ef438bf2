package controller

import (
	"context"
	"net/http"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

type CreateNotificationController struct {
	UC *usecase.CreateNotificationUseCase
}

func NewCreateNotificationController(uc *usecase.CreateNotificationUseCase) *CreateNotificationController {
	return &CreateNotificationController{UC: uc}
}

type createNotificationRequest struct {
	RecipientID   string  `json:"recipient_id" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Content       string  `json:"content" binding:"required"`
	ReferenceID   *string `json:"reference_id"`
	ReferenceType *string `json:"reference_type"`
}

// Handle inserts a single notification sent by the caller.
func (h *CreateNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		n, err := h.UC.Execute(ctx, usecase.CreateNotificationInput{
			RecipientID:   req.RecipientID,
			SenderID:      auth.UserID(c),
			Type:          req.Type,
			Content:       req.Content,
			ReferenceID:   req.ReferenceID,
			ReferenceType: req.ReferenceType,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, n)
	}
}
