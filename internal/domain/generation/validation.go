package generation

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks req against the request invariants. It runs before any
// enrichment or provider call.
func (c *Catalog) Validate(ctx context.Context, req GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return newValidationError(ctx, "Prompt is required", "prompt-required", nil)
	}
	if length := utf8.RuneCountInString(req.Prompt); length > MaxPromptLength {
		return newValidationError(ctx,
			fmt.Sprintf("Prompt too long (max %d characters)", MaxPromptLength),
			"prompt-too-long", map[string]any{"length": length})
	}
	if req.Width < MinDimension || req.Width > MaxDimension {
		return newValidationError(ctx,
			fmt.Sprintf("Width must be between %d and %d", MinDimension, MaxDimension),
			"width-out-of-range", map[string]any{"width": req.Width})
	}
	if req.Height < MinDimension || req.Height > MaxDimension {
		return newValidationError(ctx,
			fmt.Sprintf("Height must be between %d and %d", MinDimension, MaxDimension),
			"height-out-of-range", map[string]any{"height": req.Height})
	}

	model, ok := c.Model(req.Model)
	if !ok {
		return newValidationError(ctx, "Invalid model", "model-invalid", map[string]any{"model": string(req.Model)})
	}
	if req.N < MinImages || req.N > MaxImages {
		return newValidationError(ctx,
			fmt.Sprintf("n must be between %d and %d", MinImages, MaxImages),
			"n-out-of-range", map[string]any{"n": req.N})
	}
	if !c.HasQuality(req.Quality) {
		return newValidationError(ctx, "Invalid quality mode", "quality-invalid", map[string]any{"quality": string(req.Quality)})
	}
	if !c.HasStyle(req.Style) {
		return newValidationError(ctx, "Invalid style preset", "style-invalid", map[string]any{"style": string(req.Style)})
	}
	if len(req.ReferenceImages) > 0 && !model.SupportsReference {
		return newValidationError(ctx,
			fmt.Sprintf("Model %s does not accept reference images", req.Model),
			"reference-unsupported", map[string]any{"model": string(req.Model)})
	}
	return nil
}
