package settings

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samber/mo"

	"hdbackend/core"
	"hdbackend/db"
	"hdbackend/models"
	"hdbackend/utils"
)

type SettingsService struct {
	settingsRepo *db.PostgresSettingsRepository
}

func NewSettingsService(repo *db.PostgresSettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: repo}
}

func (s *SettingsService) UpsertBooleanSetting(ctx context.Context, key string, value bool) error {
	log.Printf("📋 Starting to upsert boolean setting: %s", key)
	if err := s.validateKey(key, models.SettingTypeBool); err != nil {
		return fmt.Errorf("invalid setting: %w", err)
	}

	_, err := s.settingsRepo.UpsertBooleanSetting(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert boolean setting: %w", err)
	}

	log.Printf("📋 Completed successfully - upserted boolean setting: %s", key)
	return nil
}

func (s *SettingsService) UpsertStringArraySetting(ctx context.Context, key string, value []string) error {
	log.Printf("📋 Starting to upsert string array setting: %s", key)
	if err := s.validateKey(key, models.SettingTypeStringArr); err != nil {
		return fmt.Errorf("invalid setting: %w", err)
	}

	_, err := s.settingsRepo.UpsertStringArraySetting(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert string array setting: %w", err)
	}

	log.Printf("📋 Completed successfully - upserted string array setting: %s", key)
	return nil
}

func (s *SettingsService) GetBooleanSetting(ctx context.Context, key string) (mo.Option[bool], error) {
	log.Printf("📋 Starting to get boolean setting: %s", key)
	if err := s.validateKey(key, models.SettingTypeBool); err != nil {
		return mo.None[bool](), fmt.Errorf("invalid setting: %w", err)
	}

	setting, err := s.settingsRepo.GetSetting(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.Printf("📋 Completed successfully - boolean setting not found: %s", key)
			return mo.None[bool](), nil
		}
		return mo.None[bool](), fmt.Errorf("failed to get boolean setting: %w", err)
	}

	utils.AssertInvariant(setting.ValueBoolean != nil, "boolean setting must have a value")
	log.Printf("📋 Completed successfully - retrieved boolean setting: %s", key)
	return mo.Some(*setting.ValueBoolean), nil
}

func (s *SettingsService) GetStringArraySetting(ctx context.Context, key string) (mo.Option[[]string], error) {
	log.Printf("📋 Starting to get string array setting: %s", key)
	if err := s.validateKey(key, models.SettingTypeStringArr); err != nil {
		return mo.None[[]string](), fmt.Errorf("invalid setting: %w", err)
	}

	setting, err := s.settingsRepo.GetSetting(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			log.Printf("📋 Completed successfully - string array setting not found: %s", key)
			return mo.None[[]string](), nil
		}
		return mo.None[[]string](), fmt.Errorf("failed to get string array setting: %w", err)
	}

	utils.AssertInvariant(setting.ValueStringArr != nil, "string array setting must have a value")
	log.Printf("📋 Completed successfully - retrieved string array setting: %s", key)
	return mo.Some([]string(setting.ValueStringArr)), nil
}

// GetWorkspaceSettings composes the individual workspace keys into the view
// the poller consumes. Absent keys yield zero values, which the scope filter
// treats as include-everything.
func (s *SettingsService) GetWorkspaceSettings(ctx context.Context) (*models.WorkspaceSettings, error) {
	log.Printf("📋 Starting to get workspace settings")

	settings := &models.WorkspaceSettings{}

	maybeMonitored, err := s.GetStringArraySetting(ctx, models.SettingKeyMonitoredChannels)
	if err != nil {
		return nil, fmt.Errorf("failed to get monitored channels: %w", err)
	}
	settings.MonitoredChannels = maybeMonitored.OrElse(nil)

	maybeIgnored, err := s.GetStringArraySetting(ctx, models.SettingKeyIgnoredChannels)
	if err != nil {
		return nil, fmt.Errorf("failed to get ignored channels: %w", err)
	}
	settings.IgnoredChannels = maybeIgnored.OrElse(nil)

	maybeMentions, err := s.GetBooleanSetting(ctx, models.SettingKeyEnableMentions)
	if err != nil {
		return nil, fmt.Errorf("failed to get enable_mentions: %w", err)
	}
	settings.EnableMentions = maybeMentions.OrElse(true)

	maybeThreads, err := s.GetBooleanSetting(ctx, models.SettingKeyEnableThreads)
	if err != nil {
		return nil, fmt.Errorf("failed to get enable_threads: %w", err)
	}
	settings.EnableThreads = maybeThreads.OrElse(true)

	log.Printf("📋 Completed successfully - retrieved workspace settings")
	return settings, nil
}

func (s *SettingsService) UpdateWorkspaceSettings(
	ctx context.Context,
	settings *models.WorkspaceSettings,
) error {
	log.Printf("📋 Starting to update workspace settings")

	if err := s.UpsertStringArraySetting(ctx, models.SettingKeyMonitoredChannels, settings.MonitoredChannels); err != nil {
		return err
	}
	if err := s.UpsertStringArraySetting(ctx, models.SettingKeyIgnoredChannels, settings.IgnoredChannels); err != nil {
		return err
	}
	if err := s.UpsertBooleanSetting(ctx, models.SettingKeyEnableMentions, settings.EnableMentions); err != nil {
		return err
	}
	if err := s.UpsertBooleanSetting(ctx, models.SettingKeyEnableThreads, settings.EnableThreads); err != nil {
		return err
	}

	log.Printf("📋 Completed successfully - updated workspace settings")
	return nil
}

func (s *SettingsService) validateKey(key string, expectedType models.SettingType) error {
	keyDef, exists := models.SupportedSettings[key]
	if !exists {
		return fmt.Errorf("unsupported setting key: %s", key)
	}

	if keyDef.Type != expectedType {
		return fmt.Errorf("setting key %s expects type %s, got %s", key, keyDef.Type, expectedType)
	}

	return nil
}
