package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPromptSanitizer_Level(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"none", LevelNone},
		{" FULL ", LevelFull},
		{"hashed", LevelHashed},
		{"", LevelHashed},
		{"verbose", LevelHashed},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPromptSanitizer(tt.in, "salt").Level())
		})
	}
}

func TestSanitizePrompt(t *testing.T) {
	t.Run("none redacts", func(t *testing.T) {
		s := NewPromptSanitizer("none", "salt")
		assert.Equal(t, "[REDACTED]", s.SanitizePrompt("a cat, mail john@example.com"))
	})

	t.Run("full keeps prompt", func(t *testing.T) {
		s := NewPromptSanitizer("full", "salt")
		assert.Equal(t, "a cat, mail john@example.com", s.SanitizePrompt("a cat, mail john@example.com"))
	})

	t.Run("hashed masks contact details", func(t *testing.T) {
		s := NewPromptSanitizer("hashed", "salt")
		out := s.SanitizePrompt("portrait of john@example.com, see https://example.com/ref.png, call +1 555 123 4567, host 10.0.0.1")

		assert.NotContains(t, out, "john@example.com")
		assert.NotContains(t, out, "https://example.com/ref.png")
		assert.NotContains(t, out, "555 123 4567")
		assert.NotContains(t, out, "10.0.0.1")
		assert.Contains(t, out, "[EMAIL:")
		assert.Contains(t, out, "[URL:")
		assert.Contains(t, out, "[PHONE:")
		assert.Contains(t, out, "[IP:")
		assert.True(t, strings.HasPrefix(out, "portrait of "))
	})

	t.Run("hashed leaves plain prompts", func(t *testing.T) {
		s := NewPromptSanitizer("hashed", "salt")
		assert.Equal(t, "a cat, anime style, 8k uhd", s.SanitizePrompt("a cat, anime style, 8k uhd"))
	})

	t.Run("hash is salted and stable", func(t *testing.T) {
		a := NewPromptSanitizer("hashed", "one")
		b := NewPromptSanitizer("hashed", "two")
		in := "mail john@example.com"

		assert.Equal(t, a.SanitizePrompt(in), a.SanitizePrompt(in))
		assert.NotEqual(t, a.SanitizePrompt(in), b.SanitizePrompt(in))
	})

	t.Run("long prompts are truncated", func(t *testing.T) {
		s := NewPromptSanitizer("full", "")
		out := s.SanitizePrompt(strings.Repeat("猫", 500))
		assert.Equal(t, 201, len([]rune(out)))
		assert.True(t, strings.HasSuffix(out, "…"))
	})
}
