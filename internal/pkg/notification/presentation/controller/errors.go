package controller

import (
	"errors"
	"net/http"
	"time"

	"go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 3 * time.Second

func respondError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrPersistence) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
