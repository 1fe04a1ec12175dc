package rules

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hdbackend/models"
)

type MockCategoryRulesService struct {
	mock.Mock
}

func (m *MockCategoryRulesService) ListCategoryRules(ctx context.Context) ([]models.CategoryRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryRule), args.Error(1)
}

func (m *MockCategoryRulesService) UpsertCategoryRule(ctx context.Context, rule *models.CategoryRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockCategoryRulesService) DeleteCategoryRule(ctx context.Context, category string) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRulesService) SeedDefaultRules(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
