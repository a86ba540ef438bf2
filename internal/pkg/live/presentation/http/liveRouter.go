package http

import (
	"go-hrdesk/internal/pkg/live/presentation/controller"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the live websocket endpoint. The group must carry the
// auth middleware; browsers pass the token as ?token=.
func RegisterRoutes(g *gin.RouterGroup, socket *controller.LiveSocketController) {
	g.GET("/live/ws", socket.Handle())
}
