package generation

import "math"

const (
	minSteps    = 1
	maxSteps    = 50
	minGuidance = 1.0
	maxGuidance = 15.0

	largeImagePixels = 1024 * 1024
	smallImagePixels = 512 * 512
)

// Optimize resolves the steps/guidance sent to the provider from the model
// defaults (or explicit overrides), the quality tier, the style preset and the
// image size. Unknown enum values fall back to flux/standard/none so the
// function is total.
func (c *Catalog) Optimize(model Model, quality QualityTier, style StylePreset, width, height int, userSteps *int, userGuidance *float64) OptimizedParameters {
	base, ok := c.models[model]
	if !ok {
		base = c.models[ModelFlux]
	}
	adj, ok := c.quality[quality]
	if !ok {
		adj = c.quality[QualityStandard]
	}
	preset := c.Style(style)

	steps := float64(base.DefaultSteps)
	if userSteps != nil {
		steps = float64(*userSteps)
	}
	steps = math.Round(steps * adj.stepsMultiplier)
	steps += float64(preset.StepsDelta)

	pixels := width * height
	switch {
	case pixels > largeImagePixels:
		steps = math.Round(steps * 1.2)
	case pixels < smallImagePixels:
		steps = math.Round(steps * 0.8)
	}

	guidance := base.DefaultGuidance
	if userGuidance != nil {
		guidance = *userGuidance
	}
	guidance += adj.guidanceBoost
	guidance += preset.GuidanceDelta

	return OptimizedParameters{
		Steps:       int(clampFloat(steps, minSteps, maxSteps)),
		Guidance:    roundTenth(clampFloat(guidance, minGuidance, maxGuidance)),
		Enhancement: adj.enhancement,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
