package live

import (
	"context"
	"errors"
	"sync"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	chatUsecase "go-hrdesk/internal/pkg/chat/application/usecase"
)

const ThreadView = "thread"

// ThreadSnapshot is what a MessageThread pushes to its listener.
type ThreadSnapshot struct {
	ConversationID string                   `json:"conversation_id"`
	Messages       []chat.MessageWithSender `json:"messages"`
}

// MessageThread is one viewer's open conversation.
type MessageThread struct {
	ConversationID string
	ViewerID       string

	feed     changefeed.Subscriber
	messages MessageLister
	reader   MessageReader
	sender   MessageSender
	profiles ProfileReader
	listener Listener
	log      *logger.Logger

	scope scope
	mu    sync.Mutex
	items []chat.MessageWithSender
	seen  map[string]struct{}
	open  bool
}

func (s Services) NewThread(conversationID, viewerID string, l Listener) *MessageThread {
	return &MessageThread{
		ConversationID: conversationID,
		ViewerID:       viewerID,
		feed:           s.Feed,
		messages:       s.Messages,
		reader:         s.Reader,
		sender:         s.Sender,
		profiles:       s.Profiles,
		listener:       l,
		log:            s.logger(),
		seen:           make(map[string]struct{}),
	}
}

func (t *MessageThread) Name() string { return ThreadView }

// Open subscribes before loading so no insert between the two is lost; events
// that arrive during the load wait on the mutex and are merged by id.
func (t *MessageThread) Open(ctx context.Context) error {
	if t.ConversationID == "" || t.ViewerID == "" {
		return errors.New("live: thread needs a conversation and a viewer")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	topic := changefeed.Topic{
		Table:  changefeed.TableMessages,
		Ops:    []changefeed.Op{changefeed.OpInsert},
		Filter: changefeed.Eq("conversation_id", t.ConversationID),
	}
	if err := t.scope.acquire(t.feed, topic, t.onInsert); err != nil {
		return err
	}

	loaded, err := t.messages.Execute(ctx, chatUsecase.GetConversationMessagesInput{ConversationID: t.ConversationID})
	if err != nil {
		t.scope.release()
		return err
	}
	t.items = make([]chat.MessageWithSender, 0, len(loaded))
	t.seen = make(map[string]struct{}, len(loaded))
	for _, m := range loaded {
		t.appendLocked(m)
	}
	t.open = true
	t.markReadLocked(ctx)
	notify(t.listener, ThreadView, t.snapshotLocked())
	return nil
}

func (t *MessageThread) Close() error {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()
	t.scope.release()
	return nil
}

// Send persists a message and shows it right away. The feed's echo of the
// same row is skipped by id.
func (t *MessageThread) Send(ctx context.Context, content string) (*chat.Message, error) {
	msg, err := t.sender.Execute(ctx, chatUsecase.SendMessageInput{
		ConversationID: t.ConversationID,
		SenderID:       t.ViewerID,
		Content:        content,
	})
	if err != nil {
		return nil, err
	}
	item := chat.MessageWithSender{Message: *msg}
	if p, err := t.profiles.GetByID(ctx, t.ViewerID); err == nil && p != nil {
		s := p.Summary()
		item.Sender = &s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open && t.appendLocked(item) {
		notify(t.listener, ThreadView, t.snapshotLocked())
	}
	return msg, nil
}

func (t *MessageThread) Snapshot() ThreadSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *MessageThread) onInsert(ctx context.Context, ev changefeed.Event) {
	var m chat.Message
	if err := ev.Decode(&m); err != nil {
		t.log.Error(err, "live: undecodable message event")
		return
	}
	if m.SenderID == t.ViewerID {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.seen[m.ID]; dup || !t.open {
		return
	}
	item := chat.MessageWithSender{Message: m}
	p, err := t.profiles.GetByID(ctx, m.SenderID)
	if err != nil {
		t.log.Errorf(err, "live: sender profile %s", m.SenderID)
	} else if p != nil {
		s := p.Summary()
		item.Sender = &s
	}
	t.appendLocked(item)
	t.markReadLocked(ctx)
	notify(t.listener, ThreadView, t.snapshotLocked())
}

func (t *MessageThread) appendLocked(m chat.MessageWithSender) bool {
	if _, dup := t.seen[m.ID]; dup {
		return false
	}
	t.seen[m.ID] = struct{}{}
	t.items = append(t.items, m)
	return true
}

func (t *MessageThread) markReadLocked(ctx context.Context) {
	if t.reader == nil {
		return
	}
	_, err := t.reader.Execute(ctx, chatUsecase.MarkMessagesAsReadInput{ConversationID: t.ConversationID, UserID: t.ViewerID})
	if err != nil && !errors.Is(err, chat.ErrNotParticipant) {
		t.log.Errorf(err, "live: mark %s read for %s", t.ConversationID, t.ViewerID)
	}
}

func (t *MessageThread) snapshotLocked() ThreadSnapshot {
	out := make([]chat.MessageWithSender, len(t.items))
	copy(out, t.items)
	return ThreadSnapshot{ConversationID: t.ConversationID, Messages: out}
}
