package repository

import (
	"context"

	notification "go-hrdesk/internal/pkg/notification/application/domain"
)

// NotificationRepository persists notifications. Mark* methods return only the
// rows whose state actually changed, so callers can publish one event per change.
type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)
	// CreateMany inserts a fan-out batch; the result keeps input order.
	CreateMany(ctx context.Context, ns []notification.Notification) ([]notification.Notification, error)
	Get(ctx context.Context, id string) (*notification.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)

	// MarkRead flips one notification. An empty recipientID skips the ownership check.
	MarkRead(ctx context.Context, id, recipientID string) (*notification.Notification, error)
	MarkAllRead(ctx context.Context, recipientID string) ([]notification.Notification, error)
	// MarkReadByReferences flips unread rows of the given type whose reference matches
	// both refType and one of referenceIDs.
	MarkReadByReferences(ctx context.Context, recipientID string, typ notification.Type, refType notification.ReferenceType, referenceIDs []string) ([]notification.Notification, error)

	// Delete removes one notification and returns it, or nil when nothing matched.
	Delete(ctx context.Context, id, recipientID string) (*notification.Notification, error)
}
