package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrich(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name     string
		prompt   string
		style    StylePreset
		positive string
		negative string
	}{
		{
			name:     "none keeps prompt",
			prompt:   "a cat",
			style:    StyleNone,
			positive: "a cat",
			negative: "blurry, low quality, distorted",
		},
		{
			name:     "none trims prompt",
			prompt:   "  a cat on a mat \n",
			style:    StyleNone,
			positive: "a cat on a mat",
			negative: "blurry, low quality, distorted",
		},
		{
			name:     "anime appends fragment",
			prompt:   "a cat",
			style:    "anime",
			positive: "a cat, anime style, manga art, vibrant colors, detailed shading, studio quality",
			negative: "realistic, photograph, 3d render, blurry, low quality",
		},
		{
			name:     "fragment-only preset",
			prompt:   "a harbor",
			style:    "ukiyo-e",
			positive: "a harbor, ukiyo-e, japanese woodblock print",
			negative: "blurry, low quality, distorted",
		},
		{
			name:     "unknown style behaves like none",
			prompt:   "a cat",
			style:    "made-up",
			positive: "a cat",
			negative: "blurry, low quality, distorted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Enrich(tt.prompt, tt.style)
			assert.Equal(t, tt.positive, got.Positive)
			assert.Equal(t, tt.negative, got.Negative)
		})
	}
}
