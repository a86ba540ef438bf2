package live

import (
	"context"
	"sync"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"
)

const BadgeView = "badge"

type BadgeSnapshot struct {
	Kind  notification.BadgeKind `json:"kind"`
	Count int                    `json:"count"`
}

// UnreadBadge recomputes its count from scratch on every notification insert
// or update for the viewer. Two badges never share a count.
type UnreadBadge struct {
	ViewerID string
	Kind     notification.BadgeKind

	feed     changefeed.Subscriber
	counter  BadgeCounter
	listener Listener
	log      *logger.Logger

	scope scope
	order fetchOrder
	mu    sync.Mutex
	count int
}

func (s Services) NewBadge(viewerID string, kind notification.BadgeKind, l Listener) *UnreadBadge {
	if kind == "" {
		kind = notification.BadgeAll
	}
	return &UnreadBadge{ViewerID: viewerID, Kind: kind, feed: s.Feed, counter: s.Badge, listener: l, log: s.logger()}
}

func (b *UnreadBadge) Name() string { return BadgeView }

func (b *UnreadBadge) Open(ctx context.Context) error {
	if !b.Kind.Valid() {
		return notification.ErrInvalidBadgeKind
	}
	topic := changefeed.Topic{
		Table:  changefeed.TableNotifications,
		Ops:    []changefeed.Op{changefeed.OpInsert, changefeed.OpUpdate},
		Filter: changefeed.Eq("recipient_id", b.ViewerID),
	}
	if err := b.scope.acquire(b.feed, topic, func(ctx context.Context, _ changefeed.Event) {
		if err := b.refresh(ctx); err != nil {
			b.log.Errorf(err, "live: refresh %s badge for %s", b.Kind, b.ViewerID)
		}
	}); err != nil {
		return err
	}
	if err := b.refresh(ctx); err != nil {
		b.scope.release()
		return err
	}
	return nil
}

func (b *UnreadBadge) Close() error {
	b.scope.release()
	return nil
}

func (b *UnreadBadge) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *UnreadBadge) refresh(ctx context.Context) error {
	gen := b.order.begin()
	n, err := b.counter.Execute(ctx, notifyUsecase.GetBadgeCountInput{UserID: b.ViewerID, Kind: b.Kind})
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.order.landLocked(gen) {
		return nil
	}
	b.count = n
	notify(b.listener, BadgeView, BadgeSnapshot{Kind: b.Kind, Count: n})
	return nil
}
