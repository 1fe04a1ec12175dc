package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup failed: %w", ErrNotFound)))
	assert.True(t, IsNotFoundError(errors.New("message not found: 123")))
	assert.True(t, IsNotFoundError(errors.New("Not Found")))
	assert.False(t, IsNotFoundError(errors.New("connection refused")))
}
