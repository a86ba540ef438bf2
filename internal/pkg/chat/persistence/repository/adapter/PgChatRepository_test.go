package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachablePool opens lazily, so only queries that actually reach the
// server fail.
func unreachablePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), "postgres://hrdesk@127.0.0.1:1/hrdesk?connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPgChatRepositoryAnswersMalformedIDsEmpty(t *testing.T) {
	repo := NewPgChatRepository(unreachablePool(t))
	ctx := context.Background()

	conv, err := repo.GetConversation(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, conv)

	msgs, err := repo.GetMessagesByConversation(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	members, err := repo.ListMembers(ctx, []string{"nope", ""})
	require.NoError(t, err)
	assert.Empty(t, members)

	ids, err := repo.ListConversationIDsForProfile(ctx, "not-a-profile")
	require.NoError(t, err)
	assert.Empty(t, ids)

	changed, err := repo.MarkMessagesRead(ctx, "nope", "u1")
	require.NoError(t, err)
	assert.Empty(t, changed)

	n, err := repo.CountUnreadMessages(ctx, []string{"nope"}, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)

	latest, err := repo.LatestMessages(ctx, []string{"nope"})
	require.NoError(t, err)
	assert.Empty(t, latest)

	assert.NoError(t, repo.TouchConversation(ctx, "nope", time.Now()))
}

func TestPgChatRepositoryQueriesWellFormedIDs(t *testing.T) {
	repo := NewPgChatRepository(unreachablePool(t))

	_, err := repo.GetConversation(context.Background(), uuid.NewString())
	assert.Error(t, err)
}
