package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/infrastructure/logger"
	"go-hrdesk/internal/infrastructure/realtime"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	chatUsecase "go-hrdesk/internal/pkg/chat/application/usecase"
	"go-hrdesk/internal/pkg/live"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// LiveSocketController serves the websocket through which clients open live views.
type LiveSocketController struct {
	router          *realtime.Router
	services        live.Services
	log             *logger.Logger
	inflightTimeout time.Duration
	upgrader        websocket.Upgrader
}

func NewLiveSocketController(router *realtime.Router, services live.Services, allowedOrigins []string, log *logger.Logger) *LiveSocketController {
	if log == nil {
		log = logger.Default()
	}
	return &LiveSocketController{
		router:          router,
		services:        services,
		log:             log,
		inflightTimeout: 5 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// originChecker allows every origin when the list is empty or holds "*".
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		if len(set) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
	Kind           string `json:"kind,omitempty"`
	View           string `json:"view,omitempty"`
	Content        string `json:"content,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type string `json:"type"`
	View string `json:"view,omitempty"`
}

type snapshotFrame struct {
	Type string `json:"type"`
	View string `json:"view"`
	Data any    `json:"data"`
}

type sentFrame struct {
	Type    string        `json:"type"`
	Message *chat.Message `json:"message"`
}

const defaultReadTimeout = 60 * time.Second

// session is the per-connection state owned by the read loop.
type session struct {
	conn    *realtime.Connection
	threads map[string]*live.MessageThread
}

// Handle upgrades the request and processes frames until the client disconnects.
func (ctl *LiveSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}

		ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			ctl.log.Debugf("live: upgrade failed for %s: %v", userID, err)
			return
		}

		s := &session{conn: realtime.NewConnection(userID, ws), threads: make(map[string]*live.MessageThread)}
		ctl.router.Attach(s.conn)
		defer func() {
			ctl.router.Detach(s.conn)
			s.conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		_ = s.conn.SendJSON(ackFrame{Type: "connected"})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.log.Debugf("live: read from %s ended: %v", userID, err)
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				replyError(s.conn, "bad_request", "invalid payload")
				continue
			}
			ctl.dispatch(c.Request.Context(), s, frame)
		}
	}
}

func (ctl *LiveSocketController) dispatch(ctx context.Context, s *session, frame inboundFrame) {
	switch frame.Type {
	case "watch_thread":
		if frame.ConversationID == "" {
			replyError(s.conn, "bad_request", "conversation_id is required")
			return
		}
		key := threadKey(frame.ConversationID)
		thread := ctl.services.NewThread(frame.ConversationID, s.conn.UserID, ctl.push(s.conn, key))
		if ctl.watch(ctx, s, key, thread) {
			s.threads[frame.ConversationID] = thread
		}
	case "unwatch_thread":
		ctl.unwatch(s, threadKey(frame.ConversationID))
	case "watch_conversations":
		ctl.watch(ctx, s, live.ConversationsView, ctl.services.NewConversationList(s.conn.UserID, ctl.push(s.conn, live.ConversationsView)))
	case "watch_badge":
		kind := notification.BadgeKind(frame.Kind)
		if kind == "" {
			kind = notification.BadgeAll
		}
		if !kind.Valid() {
			replyError(s.conn, "bad_request", notification.ErrInvalidBadgeKind.Error())
			return
		}
		key := live.BadgeView + ":" + string(kind)
		ctl.watch(ctx, s, key, ctl.services.NewBadge(s.conn.UserID, kind, ctl.push(s.conn, key)))
	case "watch_notifications":
		ctl.watch(ctx, s, live.NotificationsView, ctl.services.NewNotificationCenter(s.conn.UserID, ctl.push(s.conn, live.NotificationsView)))
	case "unwatch":
		ctl.unwatch(s, frame.View)
	case "send_message":
		ctl.sendMessage(ctx, s, frame)
	default:
		replyError(s.conn, "unsupported_type", "unknown frame type")
	}
}

// watch opens view and hands it to the router, which closes whatever it replaces.
func (ctl *LiveSocketController) watch(ctx context.Context, s *session, key string, view live.View) bool {
	ctx, cancel := context.WithTimeout(ctx, ctl.inflightTimeout)
	defer cancel()
	if err := view.Open(ctx); err != nil {
		handleUseCaseError(s.conn, err)
		return false
	}
	if !ctl.router.Watch(s.conn, key, view) {
		return false
	}
	_ = s.conn.SendJSON(ackFrame{Type: "watching", View: key})
	return true
}

// unwatch closes the view under key; a thread key also drops the thread
// send_message would otherwise route through.
func (ctl *LiveSocketController) unwatch(s *session, key string) {
	if id, ok := strings.CutPrefix(key, live.ThreadView+":"); ok {
		delete(s.threads, id)
	}
	if key == "" || !ctl.router.Unwatch(s.conn, key) {
		replyError(s.conn, "bad_request", "view is not open")
		return
	}
	_ = s.conn.SendJSON(ackFrame{Type: "unwatched", View: key})
}

// sendMessage goes through the open thread when there is one so the sender
// sees the message immediately; the sender's other sessions get a message_sent frame.
func (ctl *LiveSocketController) sendMessage(ctx context.Context, s *session, frame inboundFrame) {
	if frame.ConversationID == "" {
		replyError(s.conn, "bad_request", "conversation_id is required")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, ctl.inflightTimeout)
	defer cancel()

	var (
		msg *chat.Message
		err error
	)
	if thread, ok := s.threads[frame.ConversationID]; ok {
		msg, err = thread.Send(ctx, frame.Content)
	} else {
		msg, err = ctl.services.Sender.Execute(ctx, chatUsecase.SendMessageInput{
			ConversationID: frame.ConversationID,
			SenderID:       s.conn.UserID,
			Content:        frame.Content,
		})
	}
	if err != nil {
		handleUseCaseError(s.conn, err)
		return
	}

	payload, err := json.Marshal(sentFrame{Type: "message_sent", Message: msg})
	if err != nil {
		replyError(s.conn, "internal_error", "failed to encode message")
		return
	}
	ctl.router.NotifyUser(s.conn.UserID, payload)
}

func (ctl *LiveSocketController) push(conn *realtime.Connection, key string) live.Listener {
	return func(_ string, data any) {
		if err := conn.SendJSON(snapshotFrame{Type: "snapshot", View: key, Data: data}); err != nil && !errors.Is(err, realtime.ErrConnectionClosed) {
			ctl.log.Warnf("live: push %s to %s: %v", key, conn.UserID, err)
		}
	}
}

func threadKey(conversationID string) string {
	return live.ThreadView + ":" + conversationID
}

func handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, chatUsecase.ErrPersistence), errors.Is(err, notifyUsecase.ErrPersistence):
		replyError(conn, "internal_error", "unexpected persistence error")
	case errors.Is(err, chat.ErrNotParticipant):
		replyError(conn, "forbidden", "user is not a participant in this conversation")
	default:
		replyError(conn, "bad_request", err.Error())
	}
}

func replyError(conn *realtime.Connection, code string, message string) {
	_ = conn.SendJSON(errorFrame{Type: "error", Code: code, Error: message})
}
