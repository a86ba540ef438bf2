package usecase

import (
	"context"
	"fmt"
	"time"

	"go-hrdesk/internal/infrastructure/changefeed"
	"go-hrdesk/internal/infrastructure/logger"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"
)

// dispatcher writes one notification per recipient and publishes the inserts.
type dispatcher struct {
	repo repository.NotificationRepository
	feed changefeed.Publisher
	log  *logger.Logger
}

func (d dispatcher) fanOut(ctx context.Context, recipients []string, senderID string, typ notification.Type, content string, refID *string, refType *notification.ReferenceType) ([]notification.Notification, error) {
	now := time.Now()
	batch := make([]notification.Notification, 0, len(recipients))
	for _, r := range recipients {
		n, err := notification.New(r, senderID, typ, content, refID, refType, now)
		if err != nil {
			return nil, err
		}
		batch = append(batch, n)
	}
	if len(batch) == 0 {
		return []notification.Notification{}, nil
	}

	// a failed batch is rolled back as a whole, so nothing is published for it
	saved, err := d.repo.CreateMany(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	publish(ctx, d.feed, d.log, changefeed.OpInsert, saved...)
	return saved, nil
}

func except(ids []string, skip string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" || id == skip {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
