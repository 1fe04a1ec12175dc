package ingestion

import (
	"slices"
	"strings"

	"hdbackend/models"
)

// exactWordBonus makes an exact whole-token match always outrank a longer
// partial-substring match
const exactWordBonus = 100

// urgencyMarkers escalate a message to URGENT regardless of its category
var urgencyMarkers = []string{"urgent", "emergency", "asap", "critical", "immediately"}

var (
	highPriorityCategories   = []string{"hardware", "network"}
	mediumPriorityCategories = []string{"access", "software"}
)

// classifyCategory assigns a category via best weighted keyword match: every
// keyword that appears as a substring of the text scores its own length, plus
// a large bonus when it also appears as a whole token. The single
// highest-scoring match wins; ties keep the first-seen rule. With no match at
// all the default category is assigned.
//
// Deterministic and side-effect free for a given rule set and text.
func classifyCategory(text string, rules []models.CategoryRule) string {
	lowered := strings.ToLower(text)
	tokens := strings.Fields(lowered)

	bestScore := 0
	bestCategory := models.DefaultCategory

	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			k := strings.ToLower(keyword)
			if k == "" || !strings.Contains(lowered, k) {
				continue
			}

			score := len(k)
			if slices.Contains(tokens, k) {
				score += exactWordBonus
			}

			if score > bestScore {
				bestScore = score
				bestCategory = rule.Category
			}
		}
	}

	return bestCategory
}

// classifyPriority assigns a priority as an ordered precedence, not a score:
// urgency markers override everything, then the category decides.
func classifyPriority(text, category string) models.MessagePriority {
	lowered := strings.ToLower(text)

	for _, marker := range urgencyMarkers {
		if strings.Contains(lowered, marker) {
			return models.MessagePriorityUrgent
		}
	}
	if slices.Contains(highPriorityCategories, category) {
		return models.MessagePriorityHigh
	}
	if slices.Contains(mediumPriorityCategories, category) {
		return models.MessagePriorityMedium
	}
	return models.MessagePriorityLow
}
