package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hrdesk/internal/infrastructure/queue/port"
)

func TestParseQueueWeights(t *testing.T) {
	got := parseQueueWeights(" notifications=3, default ,low=x,=4,")
	assert.Equal(t, map[string]int{"notifications": 3, "default": 1, "low": 1}, got)
	assert.Empty(t, parseQueueWeights(""))
}

func TestAsynqOptionsFoldsEveryOption(t *testing.T) {
	opts := asynqOptions([]port.EnqueueOption{
		{Queue: "notifications", MaxRetry: 5},
		{Timeout: 10 * time.Second},
	})
	assert.Len(t, opts, 3)
	assert.Empty(t, asynqOptions(nil))
}

func TestRedisOptRequiresURL(t *testing.T) {
	_, err := redisOpt("  ")
	assert.Error(t, err)

	_, err = redisOpt("redis://localhost:6379/0")
	assert.NoError(t, err)
}

func TestInlineQueueRunsHandler(t *testing.T) {
	q := NewInlineQueue()
	var got []byte
	q.Register("notify:test", func(_ context.Context, task port.Task) error {
		got = task.Payload
		return nil
	})

	id, err := q.Enqueue(context.Background(), port.Task{Type: "notify:test", Payload: []byte("hi")})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, []byte("hi"), got)
}

func TestInlineQueueErrors(t *testing.T) {
	q := NewInlineQueue()
	_, err := q.Enqueue(context.Background(), port.Task{Type: "missing"})
	assert.Error(t, err)

	boom := errors.New("boom")
	q.Register("fails", func(context.Context, port.Task) error { return boom })
	_, err = q.Enqueue(context.Background(), port.Task{Type: "fails"})
	assert.ErrorIs(t, err, boom)
}
