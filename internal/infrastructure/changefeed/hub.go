package changefeed

import (
	"context"
	"errors"
	"sync"

	"go-hrdesk/internal/infrastructure/logger"
)

const defaultBuffer = 64

var ErrHubClosed = errors.New("changefeed: hub closed")

// Hub is the in-process subscription registry. Each subscription owns a
// buffered queue drained by its own goroutine, so a slow handler never
// blocks publishers or other subscribers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64
	closed bool

	buffer int
	log    *logger.Logger
}

type HubOption func(*Hub)

// WithBuffer sets the per-subscription queue length.
func WithBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func WithLogger(l *logger.Logger) HubOption {
	return func(h *Hub) {
		if l != nil {
			h.log = l
		}
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:   make(map[uint64]*subscription),
		buffer: defaultBuffer,
		log:    logger.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var _ Feed = (*Hub)(nil)

type subscription struct {
	id      uint64
	hub     *Hub
	topic   Topic
	handler Handler

	queue  chan Event
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

func (h *Hub) Subscribe(topic Topic, handler Handler) (Subscription, error) {
	if handler == nil {
		return nil, errors.New("changefeed: nil handler")
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &subscription{
		hub:     h,
		topic:   topic,
		handler: handler,
		queue:   make(chan Event, h.buffer),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		cancel()
		return nil, ErrHubClosed
	}
	h.nextID++
	s.id = h.nextID
	h.subs[s.id] = s
	h.mu.Unlock()

	go s.run()
	return s, nil
}

// Publish enqueues ev on every matching subscription. A full queue drops the
// event for that subscriber only.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrHubClosed
	}

	for _, s := range h.subs {
		if !s.topic.Matches(ev) {
			continue
		}
		select {
		case <-s.ctx.Done():
		case s.queue <- ev:
		default:
			h.log.Warnf("changefeed: dropping %s %s event for subscription %d (%s), queue full",
				ev.Table, ev.Op, s.id, s.topic.Filter)
		}
	}
	return nil
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close releases every subscription and rejects further use.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*subscription, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.subs = make(map[uint64]*subscription)
	h.closed = true
	h.mu.Unlock()

	for _, s := range subs {
		s.stop()
	}
}

func (s *subscription) Unsubscribe() {
	s.hub.mu.Lock()
	delete(s.hub.subs, s.id)
	s.hub.mu.Unlock()
	s.stop()
}

func (s *subscription) stop() {
	s.once.Do(func() {
		s.cancel()
	})
}

func (s *subscription) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.queue:
			s.deliver(ev)
		}
	}
}

func (s *subscription) deliver(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.hub.log.Warnf("changefeed: handler panic on %s %s: %v", ev.Table, ev.Op, r)
		}
	}()
	s.handler(s.ctx, ev)
}
