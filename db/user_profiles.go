package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"hdbackend/core"
	"hdbackend/models"
)

type PostgresUserProfilesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for the user_profiles table
var userProfilesColumns = []string{
	"id",
	"provider_user_id",
	"display_name",
	"email",
	"title",
	"department",
	"created_at",
	"updated_at",
}

func NewPostgresUserProfilesRepository(db *sqlx.DB, schema string) *PostgresUserProfilesRepository {
	return &PostgresUserProfilesRepository{db: db, schema: schema}
}

func (r *PostgresUserProfilesRepository) UpsertUserProfile(
	ctx context.Context,
	profile *models.UserProfile,
) error {
	if profile.ID == "" {
		profile.ID = core.NewID("usr")
	}
	returningStr := strings.Join(userProfilesColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.user_profiles (
			id, provider_user_id, display_name, email, title, department
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider_user_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			title = EXCLUDED.title,
			department = EXCLUDED.department,
			updated_at = NOW()
		RETURNING %s
	`, r.schema, returningStr)

	err := r.db.QueryRowxContext(
		ctx,
		query,
		profile.ID,
		profile.ProviderUserID,
		profile.DisplayName,
		profile.Email,
		profile.Title,
		profile.Department,
	).StructScan(profile)
	if err != nil {
		return fmt.Errorf("failed to upsert user profile: %w", err)
	}

	return nil
}

func (r *PostgresUserProfilesRepository) GetUserProfileByProviderID(
	ctx context.Context,
	providerUserID string,
) (mo.Option[*models.UserProfile], error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.user_profiles
		WHERE provider_user_id = $1`, strings.Join(userProfilesColumns, ", "), r.schema)

	profile := &models.UserProfile{}
	err := r.db.GetContext(ctx, profile, query, providerUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.UserProfile](), nil
		}
		return mo.None[*models.UserProfile](), fmt.Errorf("failed to get user profile: %w", err)
	}

	return mo.Some(profile), nil
}

func (r *PostgresUserProfilesRepository) CountUserProfiles(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s.user_profiles`, r.schema)

	var count int
	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count user profiles: %w", err)
	}

	return count, nil
}
