package messages

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"hdbackend/core"
	"hdbackend/db"
	"hdbackend/models"
)

type MessagesService struct {
	messagesRepo *db.PostgresMessagesRepository
}

func NewMessagesService(repo *db.PostgresMessagesRepository) *MessagesService {
	return &MessagesService{messagesRepo: repo}
}

func (s *MessagesService) UpsertMessage(ctx context.Context, message *models.Message) error {
	log.Printf("📋 Starting to upsert message: %s (channel: %s)", message.ID, message.Channel)

	if message.ID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if message.Channel == "" {
		return fmt.Errorf("channel cannot be empty")
	}
	if message.Text == "" {
		return fmt.Errorf("text_content cannot be empty")
	}
	if message.Status == "" {
		message.Status = models.MessageStatusPending
	}

	if err := s.messagesRepo.UpsertMessage(ctx, message); err != nil {
		return fmt.Errorf("failed to upsert message: %w", err)
	}

	log.Printf("📋 Completed successfully - upserted message: %s", message.ID)
	return nil
}

func (s *MessagesService) GetMessageByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Message], error) {
	log.Printf("📋 Starting to get message by ID: %s", id)
	if id == "" {
		return mo.None[*models.Message](), fmt.Errorf("message ID cannot be empty")
	}

	maybeMsg, err := s.messagesRepo.GetMessageByID(ctx, id)
	if err != nil {
		return mo.None[*models.Message](), fmt.Errorf("failed to get message: %w", err)
	}
	if !maybeMsg.IsPresent() {
		log.Printf("📋 Completed successfully - message not found: %s", id)
		return mo.None[*models.Message](), nil
	}

	log.Printf("📋 Completed successfully - retrieved message: %s", id)
	return maybeMsg, nil
}

func (s *MessagesService) ListMessages(ctx context.Context, limit int) ([]*models.Message, error) {
	log.Printf("📋 Starting to list messages with limit: %d", limit)
	if limit <= 0 {
		limit = 50
	}

	messages, err := s.messagesRepo.ListMessages(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d messages", len(messages))
	return messages, nil
}

func (s *MessagesService) UpdateMessageStatus(
	ctx context.Context,
	id string,
	status models.MessageStatus,
) (*models.Message, error) {
	log.Printf("📋 Starting to update message status for ID: %s to %s", id, status)
	if id == "" {
		return nil, fmt.Errorf("message ID cannot be empty")
	}

	maybeUpdated, err := s.messagesRepo.UpdateMessageStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update message status: %w", err)
	}
	if !maybeUpdated.IsPresent() {
		return nil, core.ErrNotFound
	}
	updated := maybeUpdated.MustGet()

	log.Printf("📋 Completed successfully - updated message ID: %s to status: %s", id, status)
	return updated, nil
}

func (s *MessagesService) CountMessagesByStatus(
	ctx context.Context,
	status models.MessageStatus,
) (int, error) {
	log.Printf("📋 Starting to count messages with status: %s", status)

	count, err := s.messagesRepo.CountMessagesByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	log.Printf("📋 Completed successfully - found %d messages", count)
	return count, nil
}
