package messages

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"hdbackend/models"
)

type MockMessagesService struct {
	mock.Mock
}

func (m *MockMessagesService) UpsertMessage(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessagesService) GetMessageByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Message], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Message]), args.Error(1)
}

func (m *MockMessagesService) ListMessages(ctx context.Context, limit int) ([]*models.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockMessagesService) UpdateMessageStatus(
	ctx context.Context,
	id string,
	status models.MessageStatus,
) (*models.Message, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessagesService) CountMessagesByStatus(
	ctx context.Context,
	status models.MessageStatus,
) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}
