package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"

	"github.com/lib/pq"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

const conversationColumns = `id, user1_id, user2_id, last_message_id, updated_on`

func scanConversation(row interface{ Scan(...any) error }) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	err := row.Scan(&c.ID, &c.User1ID, &c.User2ID, &c.LastMessageID, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetOrCreateConversation resolves the single conversation row for a pair of
// users, creating it on first contact. The (user1_id, user2_id) pair is
// stored in canonical order and carries a unique constraint.
func (r *messageRepository) GetOrCreateConversation(ctx context.Context, a, b int32) (*domain.Conversation, error) {
	u1, u2 := domain.ConversationPair(a, b)
	query := `INSERT INTO conversations (user1_id, user2_id, updated_on)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user1_id, user2_id) DO UPDATE SET updated_on = conversations.updated_on
	          RETURNING ` + conversationColumns
	return scanConversation(r.db.QueryRowContext(ctx, query, u1, u2, time.Now()))
}

func (r *messageRepository) GetConversation(ctx context.Context, id int32) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	c, err := scanConversation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("conversation")
	}
	return c, err
}

func (r *messageRepository) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE user1_id = $1 OR user2_id = $1 ORDER BY updated_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, *c)
	}
	return convs, rows.Err()
}

const messageColumns = `id, conversation_id, sender_id, receiver_id, content, images, status, created_on`

func scanMessage(row interface{ Scan(...any) error }) (*domain.Message, error) {
	m := &domain.Message{}
	err := row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.ReceiverID, &m.Content, pq.Array(&m.Images), &m.Status, &m.CreatedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *messageRepository) CreateMessage(ctx context.Context, m *domain.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO messages (conversation_id, sender_id, receiver_id, content, images, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		m.ConversationID, m.SenderID, m.ReceiverID, m.Content, pq.Array(m.Images), m.Status, time.Now()).
		Scan(&m.ID, &m.CreatedOn)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE conversations SET last_message_id = $1, updated_on = $2 WHERE id = $3`,
		m.ID, time.Now(), m.ConversationID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *messageRepository) ListMessages(ctx context.Context, conversationID int32, limit, skip int32) ([]domain.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT ` + messageColumns + ` FROM messages WHERE conversation_id = $1 ORDER BY created_on ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, conversationID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID, receiverID int32) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET status = $1 WHERE conversation_id = $2 AND receiver_id = $3 AND status = $4`,
		domain.MessageStatusRead, conversationID, receiverID, domain.MessageStatusSent)
	return err
}
