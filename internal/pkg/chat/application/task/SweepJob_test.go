package task

import (
	"bytes"
	"context"
	"testing"
	"time"

	"go-hrdesk/internal/infrastructure/logger"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	"go-hrdesk/internal/pkg/chat/application/usecase"
	"go-hrdesk/internal/pkg/chat/persistence/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepJobRunOnceReportsOrphans(t *testing.T) {
	store := memory.NewChatStore()
	ctx := context.Background()

	// a direct conversation that lost its members
	_, err := store.CreateConversation(ctx, chat.Conversation{CreatedAt: time.Now(), UpdatedAt: time.Now()})
	require.NoError(t, err)

	var buf bytes.Buffer
	log := logger.New().WithOutput(&buf)
	job := NewSweepJob(usecase.NewSweepDegenerateConversationsUseCase(store, log), "@every 1h", log)

	job.RunOnce()
	assert.Contains(t, buf.String(), "has 0 members")
	assert.Contains(t, buf.String(), "found 1 direct conversations")
}

func TestSweepJobRejectsBadSchedule(t *testing.T) {
	job := NewSweepJob(usecase.NewSweepDegenerateConversationsUseCase(memory.NewChatStore(), logger.Nop()), "not a schedule", logger.Nop())
	assert.Error(t, job.Start())
}

func TestSweepJobStartStop(t *testing.T) {
	job := NewSweepJob(usecase.NewSweepDegenerateConversationsUseCase(memory.NewChatStore(), logger.Nop()), "@every 1h", logger.Nop())
	require.NoError(t, job.Start())
	job.Stop()
	assert.Equal(t, "DegenerateConversationSweep", job.Name())
}
