package live

import (
	"sync"
	"sync/atomic"

	"go-hrdesk/internal/infrastructure/changefeed"
)

// scope holds a view's single subscription.
type scope struct {
	mu  sync.Mutex
	sub changefeed.Subscription
}

func (s *scope) acquire(feed changefeed.Subscriber, topic changefeed.Topic, h changefeed.Handler) error {
	sub, err := feed.Subscribe(topic, h)
	if err != nil {
		return err
	}
	s.mu.Lock()
	prev := s.sub
	s.sub = sub
	s.mu.Unlock()
	if prev != nil {
		prev.Unsubscribe()
	}
	return nil
}

func (s *scope) release() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

func (s *scope) active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub != nil
}

// fetchOrder lets the newest of overlapping refreshes win. A view numbers each
// fetch with begin and applies the result only if landLocked, called under the
// view's own mutex, accepts it.
type fetchOrder struct {
	started atomic.Uint64
	applied uint64
}

func (f *fetchOrder) begin() uint64 { return f.started.Add(1) }

func (f *fetchOrder) landLocked(gen uint64) bool {
	if gen < f.applied {
		return false
	}
	f.applied = gen
	return true
}

func notify(l Listener, view string, data any) {
	if l != nil {
		l(view, data)
	}
}
