package polish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt(t *testing.T) {
	t.Run("substitutes explicit placeholder", func(t *testing.T) {
		got := buildUserPrompt("Polish carefully: {{text}} -- end", "hello")
		assert.Equal(t, "Polish carefully: hello -- end", got)
	})

	t.Run("substitutes every placeholder occurrence", func(t *testing.T) {
		got := buildUserPrompt("{{text}} / {{text}}", "x")
		assert.Equal(t, "x / x", got)
	})

	t.Run("appends text when no placeholder", func(t *testing.T) {
		got := buildUserPrompt("Make it formal.", "hello there")
		assert.True(t, strings.HasPrefix(got, "Make it formal."))
		assert.True(t, strings.HasSuffix(got, "hello there"))
	})

	t.Run("blank template falls back to default prompt", func(t *testing.T) {
		got := buildUserPrompt("   ", "hello")
		assert.Contains(t, got, "hello")
		assert.NotContains(t, got, textPlaceholder)
		assert.Contains(t, got, "polish")
	})
}
