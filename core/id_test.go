package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	t.Run("GeneratesPrefixedID", func(t *testing.T) {
		id := NewID("msg")
		assert.True(t, strings.HasPrefix(id, "msg_"))
		assert.True(t, IsValidULID(id))
	})

	t.Run("NormalizesPrefix", func(t *testing.T) {
		id := NewID("  RULE ")
		assert.True(t, strings.HasPrefix(id, "rule_"))
	})

	t.Run("GeneratesUniqueIDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewID("msg")
			assert.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("PanicsOnEmptyPrefix", func(t *testing.T) {
		assert.Panics(t, func() { NewID("") })
		assert.Panics(t, func() { NewID("   ") })
	})
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID(NewID("setting")))
	assert.False(t, IsValidULID("no-separator"))
	assert.False(t, IsValidULID("_01G0EZ1XTM37C5X11SQTDNCTM1"))
	assert.False(t, IsValidULID("msg_not-a-ulid"))
}
