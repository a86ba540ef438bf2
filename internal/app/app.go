// Package app wires repositories, use cases and transports for the binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/config"
	cacheAdapter "go-hrdesk/internal/infrastructure/cache/adapter"
	cacheport "go-hrdesk/internal/infrastructure/cache/port"
	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/database"
	"go-hrdesk/internal/infrastructure/logger"
	qadapter "go-hrdesk/internal/infrastructure/queue/adapter"
	qport "go-hrdesk/internal/infrastructure/queue/port"
	chatUsecase "go-hrdesk/internal/pkg/chat/application/usecase"
	chatAdapter "go-hrdesk/internal/pkg/chat/persistence/repository/adapter"
	chatMemory "go-hrdesk/internal/pkg/chat/persistence/repository/memory"
	chatRepo "go-hrdesk/internal/pkg/chat/persistence/repository/port"
	chatHTTP "go-hrdesk/internal/pkg/chat/presentation/http"
	dirAdapter "go-hrdesk/internal/pkg/directory/persistence/repository/adapter"
	dirMemory "go-hrdesk/internal/pkg/directory/persistence/repository/memory"
	dirRepo "go-hrdesk/internal/pkg/directory/persistence/repository/port"
	"go-hrdesk/internal/pkg/live"
	"go-hrdesk/internal/pkg/notification/application/task"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"
	notifyAdapter "go-hrdesk/internal/pkg/notification/persistence/repository/adapter"
	notifyMemory "go-hrdesk/internal/pkg/notification/persistence/repository/memory"
	notifyRepo "go-hrdesk/internal/pkg/notification/persistence/repository/port"
	notifyHTTP "go-hrdesk/internal/pkg/notification/presentation/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Deps are the backends a Container is assembled from.
type Deps struct {
	Chat          chatRepo.ChatRepository
	Notifications notifyRepo.NotificationRepository
	Profiles      dirRepo.ProfileRepository
	Feed          changefeed.Feed
	Queue         qport.Client
	Log           *logger.Logger
}

// Container holds every use case plus the resources the binaries must release.
type Container struct {
	Log  *logger.Logger
	Feed changefeed.Feed

	Chat          chatHTTP.UseCases
	Notifications notifyHTTP.UseCases
	Fanout        task.Handlers
	Dispatcher    *task.Dispatcher
	Sweep         *chatUsecase.SweepDegenerateConversationsUseCase
	Live          live.Services

	Tokens *auth.Tokens
	Hub    *changefeed.Hub
	Relay  *changefeed.RedisRelay
	Inline *qadapter.InlineQueue

	closers []func()
}

// Build assembles use cases over deps. It opens nothing.
func Build(d Deps) *Container {
	log := d.Log
	if log == nil {
		log = logger.Default()
	}

	notifyNewMessage := notifyUsecase.NewNotifyNewMessageUseCase(d.Notifications, d.Feed, log)
	markMessageNotifications := notifyUsecase.NewMarkMessageNotificationsReadUseCase(d.Notifications, d.Feed, log)

	chat := chatHTTP.UseCases{
		CreateDirect:       chatUsecase.NewCreateDirectConversationUseCase(d.Chat, nil, d.Feed, log),
		CreateGroup:        chatUsecase.NewCreateGroupConversationUseCase(d.Chat, d.Feed, log),
		AddMember:          chatUsecase.NewAddMemberUseCase(d.Chat, d.Feed, log),
		ListConversations:  chatUsecase.NewListConversationsUseCase(d.Chat, d.Profiles),
		GetMessages:        chatUsecase.NewGetConversationMessagesUseCase(d.Chat, d.Profiles),
		SendMessage:        chatUsecase.NewSendMessageUseCase(d.Chat, notifyNewMessage, d.Feed, log),
		MarkMessagesAsRead: chatUsecase.NewMarkMessagesAsReadUseCase(d.Chat, markMessageNotifications, d.Feed, log),
		UnreadMessageCount: chatUsecase.NewGetUnreadMessageCountUseCase(d.Chat),
	}

	unreadNotifications := notifyUsecase.NewGetUnreadCountUseCase(d.Notifications)
	notifications := notifyHTTP.UseCases{
		List:       notifyUsecase.NewListNotificationsUseCase(d.Notifications, d.Profiles),
		Create:     notifyUsecase.NewCreateNotificationUseCase(d.Notifications, d.Feed, log),
		MarkAsRead: notifyUsecase.NewMarkAsReadUseCase(d.Notifications, d.Feed, log),
		MarkAll:    notifyUsecase.NewMarkAllAsReadUseCase(d.Notifications, d.Feed, log),
		Delete:     notifyUsecase.NewDeleteNotificationUseCase(d.Notifications, d.Feed, log),
		Badge:      notifyUsecase.NewGetBadgeCountUseCase(unreadNotifications, chat.UnreadMessageCount),
	}

	return &Container{
		Log:           log,
		Feed:          d.Feed,
		Chat:          chat,
		Notifications: notifications,
		Fanout: task.Handlers{
			LeaveRequest:  notifyUsecase.NewNotifyLeaveRequestUseCase(d.Notifications, d.Profiles, d.Feed, log),
			LeaveResponse: notifyUsecase.NewNotifyLeaveResponseUseCase(d.Notifications, d.Feed, log),
			TaskAssigned:  notifyUsecase.NewNotifyTaskAssignedUseCase(d.Notifications, d.Feed, log),
			Announcement:  notifyUsecase.NewNotifyAnnouncementUseCase(d.Notifications, d.Profiles, d.Feed, log),
		},
		Dispatcher: task.NewDispatcher(d.Queue),
		Sweep:      chatUsecase.NewSweepDegenerateConversationsUseCase(d.Chat, log),
		Live: live.Services{
			Feed:          d.Feed,
			Messages:      chat.GetMessages,
			Reader:        chat.MarkMessagesAsRead,
			Sender:        chat.SendMessage,
			Conversations: chat.ListConversations,
			Badge:         notifications.Badge,
			Notifications: notifications.List,
			Unread:        unreadNotifications,
			Profiles:      d.Profiles,
			Log:           log,
		},
	}
}

// NewMemory builds an in-process container: memory stores, a local hub and
// an inline queue that runs fan-out tasks on enqueue.
func NewMemory(log *logger.Logger, profiles *dirMemory.ProfileStore) *Container {
	if profiles == nil {
		profiles = dirMemory.NewProfileStore()
	}
	hub := changefeed.NewHub(changefeed.WithLogger(log))
	inline := qadapter.NewInlineQueue()
	c := Build(Deps{
		Chat:          chatMemory.NewChatStore(),
		Notifications: notifyMemory.NewNotificationStore(),
		Profiles:      profiles,
		Feed:          hub,
		Queue:         inline,
		Log:           log,
	})
	c.Hub = hub
	c.Inline = inline
	task.RegisterNotifyTasks(inline, c.Fanout, c.Log)
	c.closers = append(c.closers, hub.Close)
	return c
}

// New opens the backends selected by cfg. Close releases them.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if log == nil {
		log = logger.Default()
	}

	var closers []func()
	fail := func(err error) (*Container, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		c, err := cacheAdapter.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fail(err)
		}
		rdb = c
		closers = append(closers, func() { _ = c.Close() })
	}

	var (
		chatStore   chatRepo.ChatRepository
		notifyStore notifyRepo.NotificationRepository
		profiles    dirRepo.ProfileRepository
	)
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := openPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, pool.Close)
		chatStore = chatAdapter.NewPgChatRepository(pool)
		notifyStore = notifyAdapter.NewPgNotificationRepository(pool)
		profiles = dirAdapter.NewPgProfileRepository(pool)
	default:
		log.Warn("app: using in-memory storage; data is lost on restart")
		chatStore = chatMemory.NewChatStore()
		notifyStore = notifyMemory.NewNotificationStore()
		profiles = dirMemory.NewProfileStore()
	}

	var cache cacheport.Cache = cacheAdapter.NewMemoryCache()
	if rdb != nil {
		cache = cacheAdapter.NewRedisCache(rdb)
	}
	profiles = dirAdapter.NewCachedProfileRepository(profiles, cache, cfg.ProfileCacheTTL, log)

	hub := changefeed.NewHub(changefeed.WithLogger(log))
	closers = append(closers, hub.Close)
	var (
		feed  changefeed.Feed = hub
		relay *changefeed.RedisRelay
	)
	if rdb != nil {
		nodeID := cfg.NodeID
		if nodeID == "" {
			nodeID = uuid.NewString()
		}
		r, err := changefeed.NewRedisRelay(hub, rdb, cfg.ChangefeedChannel, nodeID, log)
		if err != nil {
			return fail(err)
		}
		feed, relay = r, r
	}

	var (
		queue  qport.Client
		inline *qadapter.InlineQueue
	)
	if rdb != nil {
		q, err := qadapter.NewAsynqClient(cfg.RedisURL)
		if err != nil {
			return fail(err)
		}
		queue = q
		closers = append(closers, func() { _ = q.Close() })
	} else {
		log.Info("app: REDIS_URL not set; notification tasks run inline")
		inline = qadapter.NewInlineQueue()
		queue = inline
	}

	c := Build(Deps{
		Chat:          chatStore,
		Notifications: notifyStore,
		Profiles:      profiles,
		Feed:          feed,
		Queue:         queue,
		Log:           log,
	})
	c.Hub, c.Relay, c.Inline = hub, relay, inline
	if inline != nil {
		task.RegisterNotifyTasks(inline, c.Fanout, log)
	}
	c.Tokens = auth.NewTokens(cfg.JWTSecret, 0)
	c.closers = closers
	return c, nil
}

func openPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := database.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("app: migrate: %w", err)
	}
	return pool, nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
