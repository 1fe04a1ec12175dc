package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"hdbackend/models"
)

type PostgresMessagesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for the messages table
var messagesColumns = []string{
	"id",
	"channel",
	"user_name",
	"text_content",
	"ts",
	"thread_root_id",
	"reply_count",
	"message_type",
	"priority",
	"category",
	"status",
	"context",
	"created_at",
	"updated_at",
}

func NewPostgresMessagesRepository(db *sqlx.DB, schema string) *PostgresMessagesRepository {
	return &PostgresMessagesRepository{db: db, schema: schema}
}

// UpsertMessage inserts a message or, when the ID already exists, overwrites
// its content. Status is deliberately left untouched on conflict - the operator
// workflow owns status transitions and re-ingestion must not undo them.
func (r *PostgresMessagesRepository) UpsertMessage(ctx context.Context, message *models.Message) error {
	returningStr := strings.Join(messagesColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.messages (
			id, channel, user_name, text_content, ts, thread_root_id,
			reply_count, message_type, priority, category, status, context
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id)
		DO UPDATE SET
			channel = EXCLUDED.channel,
			user_name = EXCLUDED.user_name,
			text_content = EXCLUDED.text_content,
			thread_root_id = EXCLUDED.thread_root_id,
			reply_count = EXCLUDED.reply_count,
			message_type = EXCLUDED.message_type,
			priority = EXCLUDED.priority,
			category = EXCLUDED.category,
			context = EXCLUDED.context,
			updated_at = NOW()
		RETURNING %s`, r.schema, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		message.ID,
		message.Channel,
		message.User,
		message.Text,
		message.Timestamp,
		message.ThreadRootID,
		message.ReplyCount,
		message.Type,
		message.Priority,
		message.Category,
		message.Status,
		message.Context,
	).StructScan(message)
	if err != nil {
		return fmt.Errorf("failed to upsert message: %w", err)
	}

	return nil
}

func (r *PostgresMessagesRepository) GetMessageByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Message], error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.messages
		WHERE id = $1`, strings.Join(messagesColumns, ", "), r.schema)

	message := &models.Message{}
	err := r.db.GetContext(ctx, message, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Message](), nil
		}
		return mo.None[*models.Message](), fmt.Errorf("failed to get message: %w", err)
	}

	return mo.Some(message), nil
}

func (r *PostgresMessagesRepository) ListMessages(
	ctx context.Context,
	limit int,
) ([]*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.messages
		ORDER BY ts DESC
		LIMIT $1`, strings.Join(messagesColumns, ", "), r.schema)

	var messages []*models.Message
	err := r.db.SelectContext(ctx, &messages, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

func (r *PostgresMessagesRepository) UpdateMessageStatus(
	ctx context.Context,
	id string,
	status models.MessageStatus,
) (mo.Option[*models.Message], error) {
	query := fmt.Sprintf(`
		UPDATE %s.messages
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, r.schema, strings.Join(messagesColumns, ", "))

	message := &models.Message{}
	err := r.db.QueryRowxContext(ctx, query, id, status).StructScan(message)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Message](), nil
		}
		return mo.None[*models.Message](), fmt.Errorf("failed to update message status: %w", err)
	}

	return mo.Some(message), nil
}

func (r *PostgresMessagesRepository) CountMessagesByStatus(
	ctx context.Context,
	status models.MessageStatus,
) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s.messages
		WHERE status = $1`, r.schema)

	var count int
	err := r.db.GetContext(ctx, &count, query, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages by status: %w", err)
	}

	return count, nil
}
