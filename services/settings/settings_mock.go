package settings

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"hdbackend/models"
)

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) UpsertBooleanSetting(ctx context.Context, key string, value bool) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingsService) UpsertStringArraySetting(ctx context.Context, key string, value []string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingsService) GetBooleanSetting(ctx context.Context, key string) (mo.Option[bool], error) {
	args := m.Called(ctx, key)
	return args.Get(0).(mo.Option[bool]), args.Error(1)
}

func (m *MockSettingsService) GetStringArraySetting(
	ctx context.Context,
	key string,
) (mo.Option[[]string], error) {
	args := m.Called(ctx, key)
	return args.Get(0).(mo.Option[[]string]), args.Error(1)
}

func (m *MockSettingsService) GetWorkspaceSettings(ctx context.Context) (*models.WorkspaceSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkspaceSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateWorkspaceSettings(
	ctx context.Context,
	settings *models.WorkspaceSettings,
) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
