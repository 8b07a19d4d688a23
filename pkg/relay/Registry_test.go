package relay

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, registry.Len(), 0)

	first := &Session{ID: "first", done: make(chan struct{})}
	second := &Session{ID: "second", done: make(chan struct{})}

	registry.Insert(first)
	registry.Insert(second)

	assert.Equal(t, registry.Len(), 2)
	assert.Equal(t, registry.Find("first"), first)

	registry.Remove("first")

	assert.Equal(t, registry.Len(), 1)

	if registry.Find("first") != nil {
		t.Fatal("removed session still found")
	}

	// Removing twice is a no-op.
	registry.Remove("first")
	assert.Equal(t, registry.Len(), 1)
}
