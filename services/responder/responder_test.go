package responder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hdbackend/models"
)

func TestBuildDraftPrompt(t *testing.T) {
	t.Run("IncludesMessageAndClassification", func(t *testing.T) {
		msg := &models.Message{
			Channel:  "it-support",
			User:     "Dana",
			Text:     "my laptop screen is cracked",
			Category: "hardware",
			Priority: models.MessagePriorityHigh,
		}

		prompt := buildDraftPrompt(msg)
		assert.Contains(t, prompt, "#it-support")
		assert.Contains(t, prompt, "Dana")
		assert.Contains(t, prompt, "my laptop screen is cracked")
		assert.Contains(t, prompt, "Category: hardware")
		assert.Contains(t, prompt, "Priority: HIGH")
	})

	t.Run("IncludesRequesterAndThreadContext", func(t *testing.T) {
		msg := &models.Message{
			Channel:  "it-support",
			User:     "Dana",
			Text:     "still broken",
			Category: "hardware",
			Priority: models.MessagePriorityHigh,
			Context: &models.MessageContext{
				UserTitle:      "Account Executive",
				UserDepartment: "Sales",
				ThreadHistory:  []string{"my laptop screen is cracked", "did you try restarting"},
			},
		}

		prompt := buildDraftPrompt(msg)
		assert.Contains(t, prompt, "Account Executive, Sales")
		assert.Contains(t, prompt, "Earlier messages in this thread:")
		assert.Contains(t, prompt, "- my laptop screen is cracked")
		assert.Contains(t, prompt, "- did you try restarting")
	})

	t.Run("NoContextSectionWithoutContext", func(t *testing.T) {
		msg := &models.Message{Channel: "it-support", User: "Dana", Text: "hi"}

		prompt := buildDraftPrompt(msg)
		assert.NotContains(t, prompt, "Requester:")
		assert.NotContains(t, prompt, "Earlier messages")
	})
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name         string
		inputTokens  int64
		outputTokens int64
		expected     string
	}{
		{"zero usage", 0, 0, "0"},
		{"input only", 1_000_000, 0, "3"},
		{"output only", 0, 1_000_000, "15"},
		{"mixed usage", 500, 200, "0.0045"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := estimateCost(tt.inputTokens, tt.outputTokens)
			assert.True(t, cost.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, cost)
		})
	}
}
