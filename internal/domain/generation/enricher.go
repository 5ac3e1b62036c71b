package generation

import "strings"

// Enrich appends the style's positive fragment to the trimmed prompt and
// returns the style's negative prompt. Unknown styles behave like "none".
func (c *Catalog) Enrich(prompt string, style StylePreset) EnrichedPrompt {
	preset := c.Style(style)

	positive := strings.TrimSpace(prompt)
	if style != StyleNone && preset.Positive != "" {
		positive = positive + ", " + preset.Positive
	}

	return EnrichedPrompt{
		Positive: positive,
		Negative: preset.Negative,
	}
}
