package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"hdbackend/models"
)

func TestSettingKeyValidation(t *testing.T) {
	service := NewSettingsService(nil)

	t.Run("RejectsUnsupportedKey", func(t *testing.T) {
		_, err := service.GetBooleanSetting(context.Background(), "workspace/unknown_key")
		assert.ErrorContains(t, err, "unsupported setting key")
	})

	t.Run("RejectsTypeMismatch", func(t *testing.T) {
		_, err := service.GetBooleanSetting(context.Background(), models.SettingKeyMonitoredChannels)
		assert.ErrorContains(t, err, "expects type")

		err = service.UpsertStringArraySetting(
			context.Background(),
			models.SettingKeyEnableThreads,
			[]string{"it-support"},
		)
		assert.ErrorContains(t, err, "expects type")
	})
}
