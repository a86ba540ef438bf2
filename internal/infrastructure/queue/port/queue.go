package port

import (
	"context"
	"time"
)

// Task is a background job: a stable type name plus an opaque payload.
type Task struct {
	Type    string
	Payload []byte
}

// Handler processes a Task. A non-nil error asks the backend to retry, so
// handlers must tolerate running twice.
type Handler func(ctx context.Context, task Task) error

// EnqueueOption is mapped onto the backend's options where supported.
// Zero values mean "unspecified".
type EnqueueOption struct {
	Queue     string
	ProcessIn time.Duration
	MaxRetry  int
	Timeout   time.Duration
	Retention time.Duration
}

type Client interface {
	Enqueue(ctx context.Context, t Task, opts ...EnqueueOption) (id string, err error)
	Close() error
}

// Server blocks in Run until the context is canceled or Stop is called.
type Server interface {
	Register(taskType string, h Handler)
	Run(ctx context.Context) error
	Stop(ctx context.Context) error
}
