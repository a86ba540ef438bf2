package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"go-hrdesk/internal/infrastructure/queue/port"
)

// InlineQueue runs registered handlers synchronously inside Enqueue. It stands
// in for asynq when no Redis is configured and in tests.
type InlineQueue struct {
	mu       sync.RWMutex
	handlers map[string]port.Handler
}

func NewInlineQueue() *InlineQueue {
	return &InlineQueue{handlers: make(map[string]port.Handler)}
}

var (
	_ port.Client = (*InlineQueue)(nil)
	_ port.Server = (*InlineQueue)(nil)
)

func (q *InlineQueue) Register(taskType string, h port.Handler) {
	q.mu.Lock()
	q.handlers[taskType] = h
	q.mu.Unlock()
}

// Enqueue returns the handler's error directly; there is no retry.
func (q *InlineQueue) Enqueue(ctx context.Context, t port.Task, _ ...port.EnqueueOption) (string, error) {
	q.mu.RLock()
	h, ok := q.handlers[t.Type]
	q.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("inline queue: no handler for %q", t.Type)
	}
	if err := h(ctx, t); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

func (q *InlineQueue) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (q *InlineQueue) Stop(context.Context) error { return nil }

func (q *InlineQueue) Close() error { return nil }
