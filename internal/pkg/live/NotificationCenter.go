package live

import (
	"context"
	"sync"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	notifyUsecase "go-hrdesk/internal/pkg/notification/application/usecase"
)

const NotificationsView = "notifications"

type NotificationSnapshot struct {
	Items  []notification.WithSender `json:"items"`
	Unread int                       `json:"unread"`
}

// NotificationCenter keeps the viewer's latest notifications and unread count.
type NotificationCenter struct {
	ViewerID string
	Limit    int

	feed     changefeed.Subscriber
	lister   NotificationLister
	unread   UnreadCounter
	listener Listener
	log      *logger.Logger

	scope scope
	order fetchOrder
	mu    sync.Mutex
	state NotificationSnapshot
}

func (s Services) NewNotificationCenter(viewerID string, l Listener) *NotificationCenter {
	return &NotificationCenter{
		ViewerID: viewerID,
		feed:     s.Feed,
		lister:   s.Notifications,
		unread:   s.Unread,
		listener: l,
		log:      s.logger(),
	}
}

func (n *NotificationCenter) Name() string { return NotificationsView }

func (n *NotificationCenter) Open(ctx context.Context) error {
	topic := changefeed.Topic{
		Table:  changefeed.TableNotifications,
		Ops:    []changefeed.Op{changefeed.OpInsert, changefeed.OpUpdate, changefeed.OpDelete},
		Filter: changefeed.Eq("recipient_id", n.ViewerID),
	}
	if err := n.scope.acquire(n.feed, topic, func(ctx context.Context, _ changefeed.Event) {
		if err := n.refresh(ctx); err != nil {
			n.log.Errorf(err, "live: refresh notifications for %s", n.ViewerID)
		}
	}); err != nil {
		return err
	}
	if err := n.refresh(ctx); err != nil {
		n.scope.release()
		return err
	}
	return nil
}

func (n *NotificationCenter) Close() error {
	n.scope.release()
	return nil
}

func (n *NotificationCenter) Snapshot() NotificationSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

func (n *NotificationCenter) snapshotLocked() NotificationSnapshot {
	items := make([]notification.WithSender, len(n.state.Items))
	copy(items, n.state.Items)
	return NotificationSnapshot{Items: items, Unread: n.state.Unread}
}

func (n *NotificationCenter) refresh(ctx context.Context) error {
	gen := n.order.begin()
	items, err := n.lister.Execute(ctx, notifyUsecase.ListNotificationsInput{RecipientID: n.ViewerID, Limit: n.Limit})
	if err != nil {
		return err
	}
	unread, err := n.unread.Count(ctx, n.ViewerID)
	if err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.order.landLocked(gen) {
		return nil
	}
	n.state = NotificationSnapshot{Items: items, Unread: unread}
	notify(n.listener, NotificationsView, n.snapshotLocked())
	return nil
}
