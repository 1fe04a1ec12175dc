package directory

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"hdbackend/models"
)

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) SyncDirectory(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDirectoryService) GetUserProfileByProviderID(
	ctx context.Context,
	providerUserID string,
) (mo.Option[*models.UserProfile], error) {
	args := m.Called(ctx, providerUserID)
	return args.Get(0).(mo.Option[*models.UserProfile]), args.Error(1)
}
