package adapter

import (
	"context"
	"errors"
	"time"

	"go-hrdesk/internal/infrastructure/database"
	chat "go-hrdesk/internal/pkg/chat/application/domain"
	repository "go-hrdesk/internal/pkg/chat/persistence/repository/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	conversationColumns = "id::text, title, is_group, created_at, updated_at"
	messageColumns      = "id::text, conversation_id::text, sender_id::text, content, created_at, is_read"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

var errNilPool = errors.New("PgChatRepository: nil pool")

func (r *PgChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) (chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return chat.Conversation{}, errNilPool
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (title, is_group, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, c.Title, c.IsGroup, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return c, err
}

func (r *PgChatRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	if !database.IsUUID(conversationID) {
		return nil
	}
	_, err := r.pool.Exec(ctx, "DELETE FROM conversations WHERE id = $1::uuid", conversationID)
	return err
}

func (r *PgChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(conversationID) {
		return nil, nil
	}
	var c chat.Conversation
	err := r.pool.QueryRow(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE id = $1::uuid", conversationID,
	).Scan(&c.ID, &c.Title, &c.IsGroup, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgChatRepository) ListConversationsByIDs(ctx context.Context, ids []string) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if ids = database.UUIDs(ids); len(ids) == 0 {
		return []chat.Conversation{}, nil
	}
	return r.queryConversations(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE id = ANY($1::uuid[]) ORDER BY updated_at DESC", ids)
}

func (r *PgChatRepository) ListDirectCandidates(ctx context.Context) ([]chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	return r.queryConversations(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE is_group = FALSE AND title IS NULL ORDER BY created_at, id")
}

func (r *PgChatRepository) TouchConversation(ctx context.Context, conversationID string, at time.Time) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	if !database.IsUUID(conversationID) {
		return nil
	}
	_, err := r.pool.Exec(ctx,
		"UPDATE conversations SET updated_at = $2 WHERE id = $1::uuid", conversationID, at)
	return err
}

func (r *PgChatRepository) AddMember(ctx context.Context, m chat.Member) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errNilPool
	}
	ct, err := r.pool.Exec(ctx, `
		INSERT INTO conversation_members (conversation_id, profile_id, joined_at)
		VALUES ($1::uuid, $2::uuid, $3)
		ON CONFLICT (conversation_id, profile_id) DO NOTHING
	`, m.ConversationID, m.ProfileID, m.JoinedAt)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

func (r *PgChatRepository) ListMembers(ctx context.Context, conversationIDs []string) ([]chat.Member, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if conversationIDs = database.UUIDs(conversationIDs); len(conversationIDs) == 0 {
		return []chat.Member{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT conversation_id::text, profile_id::text, joined_at
		FROM conversation_members
		WHERE conversation_id = ANY($1::uuid[])
		ORDER BY joined_at, profile_id
	`, conversationIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []chat.Member{}
	for rows.Next() {
		var m chat.Member
		if err := rows.Scan(&m.ConversationID, &m.ProfileID, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return members, nil
}

func (r *PgChatRepository) ListConversationIDsForProfile(ctx context.Context, profileID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(profileID) {
		return []string{}, nil
	}
	return r.queryIDs(ctx,
		"SELECT conversation_id::text FROM conversation_members WHERE profile_id = $1::uuid", profileID)
}

func (r *PgChatRepository) CountDegenerateDirect(ctx context.Context) ([]chat.MemberCount, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.created_at, COUNT(m.profile_id)
		FROM conversations c
		LEFT JOIN conversation_members m ON m.conversation_id = c.id
		WHERE c.is_group = FALSE
		GROUP BY c.id, c.created_at
		HAVING COUNT(m.profile_id) <> 2
		ORDER BY c.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []chat.MemberCount{}
	for rows.Next() {
		var mc chat.MemberCount
		if err := rows.Scan(&mc.ConversationID, &mc.CreatedAt, &mc.Members); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	if r == nil || r.pool == nil {
		return chat.Message{}, errNilPool
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content, created_at, is_read)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.Content, m.CreatedAt, m.IsRead).Scan(&m.ID)
	return m, err
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(conversationID) {
		return []chat.Message{}, nil
	}
	return r.queryMessages(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE conversation_id = $1::uuid ORDER BY created_at, id", conversationID)
}

func (r *PgChatRepository) LatestMessages(ctx context.Context, conversationIDs []string) (map[string]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	conversationIDs = database.UUIDs(conversationIDs)
	latest := make(map[string]chat.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return latest, nil
	}
	msgs, err := r.queryMessages(ctx, `
		SELECT DISTINCT ON (conversation_id) `+messageColumns+`
		FROM messages
		WHERE conversation_id = ANY($1::uuid[])
		ORDER BY conversation_id, created_at DESC, id DESC
	`, conversationIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		latest[m.ConversationID] = m
	}
	return latest, nil
}

func (r *PgChatRepository) ListMessageIDs(ctx context.Context, conversationID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(conversationID) {
		return []string{}, nil
	}
	return r.queryIDs(ctx, "SELECT id::text FROM messages WHERE conversation_id = $1::uuid", conversationID)
}

func (r *PgChatRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	if !database.IsUUID(conversationID) {
		return []chat.Message{}, nil
	}
	return r.queryMessages(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE conversation_id = $1::uuid AND sender_id::text <> $2 AND is_read = FALSE
		RETURNING `+messageColumns, conversationID, readerID)
}

func (r *PgChatRepository) CountUnreadMessages(ctx context.Context, conversationIDs []string, readerID string) (int, error) {
	if r == nil || r.pool == nil {
		return 0, errNilPool
	}
	if conversationIDs = database.UUIDs(conversationIDs); len(conversationIDs) == 0 {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM messages
		WHERE conversation_id = ANY($1::uuid[]) AND sender_id::text <> $2 AND is_read = FALSE
	`, conversationIDs, readerID).Scan(&n)
	return n, err
}

func (r *PgChatRepository) queryConversations(ctx context.Context, sql string, args ...any) ([]chat.Conversation, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := []chat.Conversation{}
	for rows.Next() {
		var c chat.Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.IsGroup, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return convs, nil
}

func (r *PgChatRepository) queryMessages(ctx context.Context, sql string, args ...any) ([]chat.Message, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []chat.Message{}
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt, &m.IsRead); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) queryIDs(ctx context.Context, sql string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return ids, nil
}
