package core

import (
	"errors"
	"regexp"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// IsNotFoundError checks if an error is a "not found" error
// This function handles both the ErrNotFound sentinel error and legacy string-based errors
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return containsNotFound(err.Error())
}

// containsNotFound checks if an error message contains "not found"
func containsNotFound(errMsg string) bool {
	return len(errMsg) > 0 && (regexp.MustCompile(`(?i)not found`).MatchString(errMsg))
}
