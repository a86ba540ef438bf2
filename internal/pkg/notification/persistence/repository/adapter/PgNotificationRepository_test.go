package adapter

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notification "go-hrdesk/internal/pkg/notification/application/domain"
)

func unreachablePool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), "postgres://hrdesk@127.0.0.1:1/hrdesk?connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestPgNotificationRepositoryAnswersMalformedIDsEmpty(t *testing.T) {
	repo := NewPgNotificationRepository(unreachablePool(t))
	ctx := context.Background()

	n, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = repo.MarkRead(ctx, "nope", "u1")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = repo.Delete(ctx, "nope", "")
	require.NoError(t, err)
	assert.Nil(t, n)

	list, err := repo.ListByRecipient(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	count, err := repo.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	changed, err := repo.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, changed)

	changed, err = repo.MarkReadByReferences(ctx, uuid.NewString(), notification.TypeMessage, notification.RefMessage, []string{"m-1"})
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestPgNotificationRepositoryQueriesWellFormedIDs(t *testing.T) {
	repo := NewPgNotificationRepository(unreachablePool(t))

	_, err := repo.CountUnread(context.Background(), uuid.NewString())
	assert.Error(t, err)
}
