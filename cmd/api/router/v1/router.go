package v1

import (
	"net/http"

	"go-hrdesk/internal/app"
	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/infrastructure/realtime"
	chatHTTP "go-hrdesk/internal/pkg/chat/presentation/http"
	liveController "go-hrdesk/internal/pkg/live/presentation/controller"
	liveHTTP "go-hrdesk/internal/pkg/live/presentation/http"
	notifyHTTP "go-hrdesk/internal/pkg/notification/presentation/http"

	"github.com/gin-gonic/gin"
)

// Options carries the HTTP-only settings of the v1 surface.
type Options struct {
	Tokens         *auth.Tokens
	Realtime       *realtime.Router
	AllowedOrigins []string
}

// RegisterRoutes mounts all version 1 API routes under /api/v1 and the
// unauthenticated health check at /healthz.
func RegisterRoutes(r *gin.Engine, c *app.Container, opts Options) {
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1 := r.Group("/api/v1", auth.Middleware(opts.Tokens))
	chatHTTP.RegisterRoutes(v1, c.Chat)
	notifyHTTP.RegisterRoutes(v1, c.Notifications, c.Dispatcher)

	socket := liveController.NewLiveSocketController(opts.Realtime, c.Live, opts.AllowedOrigins, c.Log)
	liveHTTP.RegisterRoutes(v1, socket)
}
