package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"hdbackend/models"
)

func TestUpsertCategoryRuleValidation(t *testing.T) {
	service := NewCategoryRulesService(nil)

	t.Run("RejectsEmptyCategory", func(t *testing.T) {
		err := service.UpsertCategoryRule(context.Background(), &models.CategoryRule{
			DisplayName: "Hardware Issue",
		})
		assert.ErrorContains(t, err, "category cannot be empty")
	})

	t.Run("RejectsEmptyDisplayName", func(t *testing.T) {
		err := service.UpsertCategoryRule(context.Background(), &models.CategoryRule{
			Category: "hardware",
		})
		assert.ErrorContains(t, err, "display_name cannot be empty")
	})
}

func TestDeleteCategoryRuleValidation(t *testing.T) {
	service := NewCategoryRulesService(nil)

	t.Run("RejectsEmptyCategory", func(t *testing.T) {
		err := service.DeleteCategoryRule(context.Background(), "")
		assert.ErrorContains(t, err, "category cannot be empty")
	})

	t.Run("DefaultCategoryIsUndeletable", func(t *testing.T) {
		err := service.DeleteCategoryRule(context.Background(), models.DefaultCategory)
		assert.ErrorContains(t, err, "cannot be deleted")
	})
}
