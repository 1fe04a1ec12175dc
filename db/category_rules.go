package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"hdbackend/core"
	"hdbackend/models"
)

type PostgresCategoryRulesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for the category_rules table
var categoryRulesColumns = []string{
	"id",
	"category",
	"display_name",
	"keywords",
	"position",
	"created_at",
	"updated_at",
}

func NewPostgresCategoryRulesRepository(db *sqlx.DB, schema string) *PostgresCategoryRulesRepository {
	return &PostgresCategoryRulesRepository{db: db, schema: schema}
}

// ListCategoryRules returns all rules in stable position order. Classification
// tie-breaks depend on this ordering being deterministic.
func (r *PostgresCategoryRulesRepository) ListCategoryRules(ctx context.Context) ([]models.CategoryRule, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.category_rules
		ORDER BY position ASC, category ASC`, strings.Join(categoryRulesColumns, ", "), r.schema)

	var rules []models.CategoryRule
	err := r.db.SelectContext(ctx, &rules, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list category rules: %w", err)
	}

	return rules, nil
}

func (r *PostgresCategoryRulesRepository) UpsertCategoryRule(
	ctx context.Context,
	rule *models.CategoryRule,
) error {
	if rule.ID == "" {
		rule.ID = core.NewID("rule")
	}
	returningStr := strings.Join(categoryRulesColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.category_rules (
			id, category, display_name, keywords, position
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			keywords = EXCLUDED.keywords,
			position = EXCLUDED.position,
			updated_at = NOW()
		RETURNING %s
	`, r.schema, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		rule.ID,
		rule.Category,
		rule.DisplayName,
		rule.Keywords,
		rule.Position,
	).StructScan(rule)
	if err != nil {
		return fmt.Errorf("failed to upsert category rule: %w", err)
	}

	return nil
}

func (r *PostgresCategoryRulesRepository) DeleteCategoryRule(ctx context.Context, category string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s.category_rules
		WHERE category = $1`, r.schema)

	result, err := r.db.ExecContext(ctx, query, category)
	if err != nil {
		return fmt.Errorf("failed to delete category rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *PostgresCategoryRulesRepository) CountCategoryRules(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s.category_rules`, r.schema)

	var count int
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count category rules: %w", err)
	}

	return count, nil
}
