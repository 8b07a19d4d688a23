package api

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestLimiter(t *testing.T) {
	limiter := NewLimiter(2)

	assert.Equal(t, limiter.Add("a"), true)
	assert.Equal(t, limiter.Add("b"), true)
	assert.Equal(t, limiter.Add("c"), false)
	assert.Equal(t, limiter.Active(), 2)

	// Duplicate identifiers never double-count.
	assert.Equal(t, limiter.Add("a"), false)

	limiter.Remove("a")
	assert.Equal(t, limiter.Active(), 1)
	assert.Equal(t, limiter.Add("c"), true)

	// Removing an unknown identifier is a no-op.
	limiter.Remove("ghost")
	assert.Equal(t, limiter.Active(), 2)
}
