package rules

import (
	"context"
	"fmt"
	"log"

	"hdbackend/db"
	"hdbackend/models"
)

type CategoryRulesService struct {
	rulesRepo *db.PostgresCategoryRulesRepository
}

func NewCategoryRulesService(repo *db.PostgresCategoryRulesRepository) *CategoryRulesService {
	return &CategoryRulesService{rulesRepo: repo}
}

func (s *CategoryRulesService) ListCategoryRules(ctx context.Context) ([]models.CategoryRule, error) {
	log.Printf("📋 Starting to list category rules")

	rules, err := s.rulesRepo.ListCategoryRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list category rules: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d category rules", len(rules))
	return rules, nil
}

func (s *CategoryRulesService) UpsertCategoryRule(ctx context.Context, rule *models.CategoryRule) error {
	log.Printf("📋 Starting to upsert category rule: %s", rule.Category)

	if rule.Category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if rule.DisplayName == "" {
		return fmt.Errorf("display_name cannot be empty")
	}

	if err := s.rulesRepo.UpsertCategoryRule(ctx, rule); err != nil {
		return fmt.Errorf("failed to upsert category rule: %w", err)
	}

	log.Printf("📋 Completed successfully - upserted category rule: %s", rule.Category)
	return nil
}

func (s *CategoryRulesService) DeleteCategoryRule(ctx context.Context, category string) error {
	log.Printf("📋 Starting to delete category rule: %s", category)

	if category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if category == models.DefaultCategory {
		return fmt.Errorf("the default category rule cannot be deleted")
	}

	if err := s.rulesRepo.DeleteCategoryRule(ctx, category); err != nil {
		return fmt.Errorf("failed to delete category rule: %w", err)
	}

	log.Printf("📋 Completed successfully - deleted category rule: %s", category)
	return nil
}

// SeedDefaultRules installs the default rule set if no rules exist yet
func (s *CategoryRulesService) SeedDefaultRules(ctx context.Context) error {
	log.Printf("📋 Starting to seed default category rules")

	count, err := s.rulesRepo.CountCategoryRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to count category rules: %w", err)
	}
	if count > 0 {
		log.Printf("📋 Completed successfully - %d category rules already present, skipping seed", count)
		return nil
	}

	for _, rule := range models.DefaultCategoryRules() {
		rule := rule
		if err := s.rulesRepo.UpsertCategoryRule(ctx, &rule); err != nil {
			return fmt.Errorf("failed to seed category rule %s: %w", rule.Category, err)
		}
	}

	log.Printf("📋 Completed successfully - seeded default category rules")
	return nil
}
