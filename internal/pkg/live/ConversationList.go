package live

import (
	"context"
	"sync"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	chatUsecase "go-hrdesk/internal/pkg/chat/application/usecase"
)

const ConversationsView = "conversations"

// ConversationList re-fetches the viewer's conversations on any new message.
type ConversationList struct {
	ViewerID string

	feed     changefeed.Subscriber
	lister   ConversationLister
	listener Listener
	log      *logger.Logger

	scope scope
	order fetchOrder
	mu    sync.Mutex
	items []chat.ConversationSummary
}

func (s Services) NewConversationList(viewerID string, l Listener) *ConversationList {
	return &ConversationList{ViewerID: viewerID, feed: s.Feed, lister: s.Conversations, listener: l, log: s.logger()}
}

func (c *ConversationList) Name() string { return ConversationsView }

func (c *ConversationList) Open(ctx context.Context) error {
	topic := changefeed.Topic{Table: changefeed.TableMessages, Ops: []changefeed.Op{changefeed.OpInsert}}
	if err := c.scope.acquire(c.feed, topic, func(ctx context.Context, _ changefeed.Event) {
		if err := c.refresh(ctx); err != nil {
			c.log.Errorf(err, "live: refresh conversations for %s", c.ViewerID)
		}
	}); err != nil {
		return err
	}
	if err := c.refresh(ctx); err != nil {
		c.scope.release()
		return err
	}
	return nil
}

func (c *ConversationList) Close() error {
	c.scope.release()
	return nil
}

func (c *ConversationList) Snapshot() []chat.ConversationSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *ConversationList) snapshotLocked() []chat.ConversationSummary {
	out := make([]chat.ConversationSummary, len(c.items))
	copy(out, c.items)
	return out
}

func (c *ConversationList) refresh(ctx context.Context) error {
	gen := c.order.begin()
	items, err := c.lister.Execute(ctx, chatUsecase.ListConversationsInput{UserID: c.ViewerID})
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.order.landLocked(gen) {
		return nil
	}
	c.items = items
	notify(c.listener, ConversationsView, c.snapshotLocked())
	return nil
}
