package core

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID with the specified prefix.
// The resulting ID follows the format: prefix_ULID
// Example: NewID("rule") returns "rule_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	if prefix == "" || strings.TrimSpace(prefix) == "" {
		panic("Prefix cannot be empty")
	}

	cleanPrefix := strings.TrimSpace(strings.ToLower(prefix))
	ulid := ulid.Make()

	return fmt.Sprintf("%s_%s", cleanPrefix, ulid.String())
}

// IsValidULID checks whether the given ID is a prefixed ULID as produced by NewID.
func IsValidULID(id string) bool {
	parts := strings.SplitN(id, "_", 2)
	if len(parts) != 2 || parts[0] == "" {
		return false
	}
	_, err := ulid.Parse(parts[1])
	return err == nil
}
