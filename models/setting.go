package models

import (
	"time"

	"github.com/lib/pq"
)

// SettingType represents the type of setting value
type SettingType string

const (
	SettingTypeBool      SettingType = "bool"
	SettingTypeString    SettingType = "string"
	SettingTypeStringArr SettingType = "stringarr"
)

// Workspace setting keys consumed by the ingestion poller
const (
	SettingKeyMonitoredChannels = "workspace/monitored_channels"
	SettingKeyIgnoredChannels   = "workspace/ignored_channels"
	SettingKeyEnableMentions    = "workspace/enable_mentions"
	SettingKeyEnableThreads     = "workspace/enable_threads"
)

// SettingKeyDefinition defines a supported setting key with its expected type
type SettingKeyDefinition struct {
	Key  string
	Type SettingType
}

// SupportedSettings is the registry of all supported setting keys with their types
var SupportedSettings = map[string]SettingKeyDefinition{
	SettingKeyMonitoredChannels: {
		Key:  SettingKeyMonitoredChannels,
		Type: SettingTypeStringArr,
	},
	SettingKeyIgnoredChannels: {
		Key:  SettingKeyIgnoredChannels,
		Type: SettingTypeStringArr,
	},
	SettingKeyEnableMentions: {
		Key:  SettingKeyEnableMentions,
		Type: SettingTypeBool,
	},
	SettingKeyEnableThreads: {
		Key:  SettingKeyEnableThreads,
		Type: SettingTypeBool,
	},
}

// Setting represents a generic setting with all possible value types
type Setting struct {
	ID             string         `json:"id"                        db:"id"`
	Key            string         `json:"key"                       db:"key"`
	ValueBoolean   *bool          `json:"value_boolean,omitempty"   db:"value_boolean"`
	ValueString    *string        `json:"value_string,omitempty"    db:"value_string"`
	ValueStringArr pq.StringArray `json:"value_stringarr,omitempty" db:"value_stringarr"`
	CreatedAt      time.Time      `json:"created_at"                db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"                db:"updated_at"`
}

// WorkspaceSettings is the composed view the poller consumes each tick.
// Zero values mean "nothing configured", which the scope filter treats as
// include-everything (fail-open).
type WorkspaceSettings struct {
	MonitoredChannels []string `json:"monitored_channels"`
	IgnoredChannels   []string `json:"ignored_channels"`
	EnableMentions    bool     `json:"enable_mentions"`
	EnableThreads     bool     `json:"enable_threads"`
}
