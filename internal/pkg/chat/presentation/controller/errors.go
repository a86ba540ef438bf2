package controller

import (
	"errors"
	"net/http"
	"time"

	chat "go-hrdesk/internal/pkg/chat/application/domain"
	"go-hrdesk/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 3 * time.Second

// StatusFor maps a chat use case error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, chat.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, chat.ErrConversationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// store details stay in the logs
		_ = c.Error(err)
		msg = "unexpected persistence error"
	}
	c.JSON(status, gin.H{"error": msg})
}
