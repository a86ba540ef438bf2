package adapter

import (
	"context"
	"errors"

	"go-hrdesk/internal/infrastructure/database"
	notification "go-hrdesk/internal/pkg/notification/application/domain"
	repository "go-hrdesk/internal/pkg/notification/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notificationColumns = `id::text, recipient_id::text, COALESCE(sender_id::text, ''), type, content,
	reference_id::text, reference_type, is_read, created_at`

const insertNotification = `
	INSERT INTO notifications (recipient_id, sender_id, type, content, reference_id, reference_type, is_read, created_at)
	VALUES ($1::uuid, NULLIF($2, '')::uuid, $3, $4, $5::uuid, $6, $7, $8)
	RETURNING id::text`

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

var errNilPool = errors.New("PgNotificationRepository: nil pool")

func insertArgs(n notification.Notification) []any {
	var refType *string
	if n.ReferenceType != nil {
		s := string(*n.ReferenceType)
		refType = &s
	}
	return []any{n.RecipientID, n.SenderID, string(n.Type), n.Content, n.ReferenceID, refType, n.IsRead, n.CreatedAt}
}

func (r *PgNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if r == nil || r.pool == nil {
		return notification.Notification{}, errNilPool
	}
	err := r.pool.QueryRow(ctx, insertNotification, insertArgs(n)...).Scan(&n.ID)
	return n, err
}

func (r *PgNotificationRepository) CreateMany(ctx context.Context, ns []notification.Notification) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if len(ns) == 0 {
		return []notification.Notification{}, nil
	}
	batch := &pgx.Batch{}
	for _, n := range ns {
		batch.Queue(insertNotification, insertArgs(n)...)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	out := make([]notification.Notification, 0, len(ns))
	for _, n := range ns {
		if err := br.QueryRow().Scan(&n.ID); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *PgNotificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(id) {
		return nil, nil
	}
	ns, err := r.query(ctx, "SELECT "+notificationColumns+" FROM notifications WHERE id = $1::uuid", id)
	if err != nil || len(ns) == 0 {
		return nil, err
	}
	return &ns[0], nil
}

func (r *PgNotificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(recipientID) {
		return []notification.Notification{}, nil
	}
	return r.query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE recipient_id = $1::uuid
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, recipientID, limit)
}

func (r *PgNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errNilPool
	}
	if !database.IsUUID(recipientID) {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1::uuid AND is_read = FALSE", recipientID,
	).Scan(&n)
	return n, err
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id, recipientID string) (*notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(id) {
		return nil, nil
	}
	ns, err := r.query(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1::uuid AND is_read = FALSE AND ($2 = '' OR recipient_id::text = $2)
		RETURNING `+notificationColumns, id, recipientID)
	if err != nil || len(ns) == 0 {
		return nil, err
	}
	return &ns[0], nil
}

func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(recipientID) {
		return []notification.Notification{}, nil
	}
	return r.query(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE recipient_id = $1::uuid AND is_read = FALSE
		RETURNING `+notificationColumns, recipientID)
}

func (r *PgNotificationRepository) MarkReadByReferences(ctx context.Context, recipientID string, typ notification.Type, refType notification.ReferenceType, referenceIDs []string) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	referenceIDs = database.UUIDs(referenceIDs)
	if len(referenceIDs) == 0 || !database.IsUUID(recipientID) {
		return []notification.Notification{}, nil
	}
	return r.query(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE recipient_id = $1::uuid AND type = $2 AND is_read = FALSE
		  AND reference_type = $3 AND reference_id = ANY($4::uuid[])
		RETURNING `+notificationColumns, recipientID, string(typ), string(refType), referenceIDs)
}

func (r *PgNotificationRepository) Delete(ctx context.Context, id, recipientID string) (*notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(id) {
		return nil, nil
	}
	ns, err := r.query(ctx, `
		DELETE FROM notifications
		WHERE id = $1::uuid AND ($2 = '' OR recipient_id::text = $2)
		RETURNING `+notificationColumns, id, recipientID)
	if err != nil || len(ns) == 0 {
		return nil, err
	}
	return &ns[0], nil
}

func (r *PgNotificationRepository) query(ctx context.Context, sql string, args ...any) ([]notification.Notification, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []notification.Notification{}
	for rows.Next() {
		var (
			n       notification.Notification
			typ     string
			refType *string
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &typ, &n.Content,
			&n.ReferenceID, &refType, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = notification.Type(typ)
		if refType != nil {
			n.ReferenceType = notification.Ref(notification.ReferenceType(*refType))
		}
		out = append(out, n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
