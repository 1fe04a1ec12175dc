package ingestion

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"hdbackend/models"
)

func TestClassifyCategory(t *testing.T) {
	defaultRules := models.DefaultCategoryRules()

	t.Run("AssignsCategoryFromKeywordMatch", func(t *testing.T) {
		tests := []struct {
			name     string
			text     string
			expected string
		}{
			{"hardware issue", "My laptop screen is cracked", "hardware"},
			{"vpn issue", "the vpn keeps dropping every hour", "network"},
			{"password reset", "I forgot my password again", "password"},
			{"access request", "can I get access to the billing dashboard", "access"},
			{"software install", "please install photoshop on my machine", "software"},
			{"no keyword match", "what time is the all hands today", "general"},
			{"empty text", "", "general"},
			{"case insensitive", "MY LAPTOP IS BROKEN", "hardware"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.expected, classifyCategory(tt.text, defaultRules))
			})
		}
	})

	t.Run("CustomRuleSetMatches", func(t *testing.T) {
		rules := []models.CategoryRule{
			{Category: "general", Keywords: pq.StringArray{}},
			{Category: "vpn", Keywords: pq.StringArray{"vpn"}},
		}

		assert.Equal(t, "vpn", classifyCategory("my vpn is down", rules))
	})

	t.Run("ExactTokenOutranksSubstringKeyword", func(t *testing.T) {
		rules := []models.CategoryRule{
			{Category: "a", Keywords: pq.StringArray{"pass"}},
			{Category: "b", Keywords: pq.StringArray{"password"}},
		}

		// both keywords match "I forgot my password"; the exact token wins
		assert.Equal(t, "b", classifyCategory("I forgot my password", rules))
	})

	t.Run("ExactWordMatchOutranksLongerSubstring", func(t *testing.T) {
		rules := []models.CategoryRule{
			{Category: "long", Keywords: pq.StringArray{"network"}},
			{Category: "short", Keywords: pq.StringArray{"net"}},
		}

		// "network" only matches as a substring of "network-wide" while
		// "net" appears as a standalone token
		category := classifyCategory("the net is down for network-wide maintenance", rules)
		assert.Equal(t, "short", category)
	})

	t.Run("LongerKeywordWinsAmongSubstringMatches", func(t *testing.T) {
		rules := []models.CategoryRule{
			{Category: "a", Keywords: pq.StringArray{"pass"}},
			{Category: "b", Keywords: pq.StringArray{"passwords"}},
		}

		category := classifyCategory("rotating all passwordsnow", rules)
		assert.Equal(t, "b", category)
	})

	t.Run("TieKeepsFirstSeenRule", func(t *testing.T) {
		rules := []models.CategoryRule{
			{Category: "a", Keywords: pq.StringArray{"printer"}},
			{Category: "b", Keywords: pq.StringArray{"printer"}},
		}

		assert.Equal(t, "a", classifyCategory("the printer is jammed", rules))
	})

	t.Run("Deterministic", func(t *testing.T) {
		text := "laptop password vpn install access"
		first := classifyCategory(text, defaultRules)
		for i := 0; i < 50; i++ {
			assert.Equal(t, first, classifyCategory(text, defaultRules))
		}
	})

	t.Run("EmptyRuleSetFallsBackToDefault", func(t *testing.T) {
		assert.Equal(t, models.DefaultCategory, classifyCategory("my laptop is broken", nil))
	})
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category string
		expected models.MessagePriority
	}{
		{"urgency marker overrides category", "printer question, urgent!", "general", models.MessagePriorityUrgent},
		{"urgency marker case insensitive", "need this fixed ASAP", "software", models.MessagePriorityUrgent},
		{"emergency marker", "emergency: the wifi is down", "network", models.MessagePriorityUrgent},
		{"hardware is high", "laptop battery swollen", "hardware", models.MessagePriorityHigh},
		{"network is high", "vpn broken", "network", models.MessagePriorityHigh},
		{"access is medium", "need repo access", "access", models.MessagePriorityMedium},
		{"software is medium", "install request", "software", models.MessagePriorityMedium},
		{"password is low", "forgot my password", "password", models.MessagePriorityLow},
		{"general is low", "quick question", "general", models.MessagePriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyPriority(tt.text, tt.category))
		})
	}
}
