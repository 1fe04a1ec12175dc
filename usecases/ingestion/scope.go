package ingestion

import (
	"slices"

	"hdbackend/models"
)

// scopeRule is one predicate→outcome pair in the monitoring policy. Rules are
// evaluated in order; the first rule that matches decides.
type scopeRule struct {
	name    string
	matches func(conv models.Conversation, settings *models.WorkspaceSettings) bool
	monitor bool
}

var scopeRules = []scopeRule{
	{
		name: "direct messages are never monitored",
		matches: func(conv models.Conversation, _ *models.WorkspaceSettings) bool {
			return conv.Kind == models.ConversationKindDirect
		},
		monitor: false,
	},
	{
		name: "group and private conversations are never monitored",
		matches: func(conv models.Conversation, _ *models.WorkspaceSettings) bool {
			return conv.Kind == models.ConversationKindGroup || conv.Kind == models.ConversationKindPrivate
		},
		monitor: false,
	},
	{
		name: "public channels require bot membership",
		matches: func(conv models.Conversation, _ *models.WorkspaceSettings) bool {
			return !conv.IsMember
		},
		monitor: false,
	},
	{
		name: "channels on the ignore list are excluded",
		matches: func(conv models.Conversation, settings *models.WorkspaceSettings) bool {
			return len(settings.IgnoredChannels) > 0 && slices.Contains(settings.IgnoredChannels, conv.Name)
		},
		monitor: false,
	},
	{
		name: "a non-empty monitor list excludes everything not on it",
		matches: func(conv models.Conversation, settings *models.WorkspaceSettings) bool {
			return len(settings.MonitoredChannels) > 0 && !slices.Contains(settings.MonitoredChannels, conv.Name)
		},
		monitor: false,
	},
}

// ShouldMonitor decides whether a conversation is eligible for polling. With
// no settings configured at all, everything is included - over-monitoring is
// preferred to appearing broken.
func ShouldMonitor(conv models.Conversation, settings *models.WorkspaceSettings) bool {
	if settings == nil {
		settings = &models.WorkspaceSettings{}
	}

	for _, rule := range scopeRules {
		if rule.matches(conv, settings) {
			return rule.monitor
		}
	}
	return true
}
