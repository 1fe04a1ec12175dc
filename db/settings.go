package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hdbackend/core"
	"hdbackend/models"
)

type PostgresSettingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for settings table
var settingsColumns = []string{
	"id",
	"key",
	"value_boolean",
	"value_string",
	"value_stringarr",
	"created_at",
	"updated_at",
}

func NewPostgresSettingsRepository(db *sqlx.DB, schema string) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db, schema: schema}
}

func (r *PostgresSettingsRepository) UpsertBooleanSetting(
	ctx context.Context,
	key string,
	value bool,
) (*models.Setting, error) {
	id := core.NewID("set")
	returningStr := strings.Join(settingsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.settings (
			id, key, value_boolean
		) VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET
			value_boolean = EXCLUDED.value_boolean,
			value_string = NULL,
			value_stringarr = NULL,
			updated_at = NOW()
		RETURNING %s
	`, r.schema, returningStr)

	var setting models.Setting
	err := r.db.QueryRowxContext(ctx, query, id, key, value).StructScan(&setting)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert boolean setting: %w", err)
	}

	return &setting, nil
}

func (r *PostgresSettingsRepository) UpsertStringSetting(
	ctx context.Context,
	key string,
	value string,
) (*models.Setting, error) {
	id := core.NewID("set")
	returningStr := strings.Join(settingsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.settings (
			id, key, value_string
		) VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET
			value_boolean = NULL,
			value_string = EXCLUDED.value_string,
			value_stringarr = NULL,
			updated_at = NOW()
		RETURNING %s
	`, r.schema, returningStr)

	var setting models.Setting
	err := r.db.QueryRowxContext(ctx, query, id, key, value).StructScan(&setting)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert string setting: %w", err)
	}

	return &setting, nil
}

func (r *PostgresSettingsRepository) UpsertStringArraySetting(
	ctx context.Context,
	key string,
	value []string,
) (*models.Setting, error) {
	id := core.NewID("set")
	returningStr := strings.Join(settingsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.settings (
			id, key, value_stringarr
		) VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET
			value_boolean = NULL,
			value_string = NULL,
			value_stringarr = EXCLUDED.value_stringarr,
			updated_at = NOW()
		RETURNING %s
	`, r.schema, returningStr)

	var setting models.Setting
	err := r.db.QueryRowxContext(ctx, query, id, key, pq.StringArray(value)).StructScan(&setting)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert string array setting: %w", err)
	}

	return &setting, nil
}

func (r *PostgresSettingsRepository) GetSetting(
	ctx context.Context,
	key string,
) (*models.Setting, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.settings
		WHERE key = $1`, strings.Join(settingsColumns, ", "), r.schema)

	setting := &models.Setting{}
	err := r.db.GetContext(ctx, setting, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	return setting, nil
}
