package messages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"hdbackend/models"
)

func TestUpsertMessageValidation(t *testing.T) {
	service := NewMessagesService(nil)

	tests := []struct {
		name    string
		message *models.Message
		wantErr string
	}{
		{
			name:    "empty ID",
			message: &models.Message{Channel: "it-support", Text: "hi"},
			wantErr: "message ID cannot be empty",
		},
		{
			name:    "empty channel",
			message: &models.Message{ID: "1.000000", Text: "hi"},
			wantErr: "channel cannot be empty",
		},
		{
			name:    "empty text",
			message: &models.Message{ID: "1.000000", Channel: "it-support"},
			wantErr: "text_content cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.UpsertMessage(context.Background(), tt.message)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetMessageByIDValidation(t *testing.T) {
	service := NewMessagesService(nil)

	_, err := service.GetMessageByID(context.Background(), "")
	assert.ErrorContains(t, err, "message ID cannot be empty")
}

func TestUpdateMessageStatusValidation(t *testing.T) {
	service := NewMessagesService(nil)

	_, err := service.UpdateMessageStatus(context.Background(), "", models.MessageStatusResponded)
	assert.ErrorContains(t, err, "message ID cannot be empty")
}
