package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestOptimize_WorkedExample(t *testing.T) {
	c := NewCatalog()

	params := c.Optimize(ModelFlux, QualityStandard, "anime", 1024, 1024, nil, nil)

	// round(20*1.0)+5 with no size adjustment at exactly 1024x1024.
	assert.Equal(t, 25, params.Steps)
	assert.Equal(t, 8.5, params.Guidance)
	assert.Equal(t, EnhancementBalanced, params.Enhancement)
}

func TestOptimize_QualityTiers(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name        string
		quality     QualityTier
		steps       int
		guidance    float64
		enhancement Enhancement
	}{
		{"economy halves steps", QualityEconomy, 10, 7.5, EnhancementFast},
		{"standard keeps defaults", QualityStandard, 20, 7.5, EnhancementBalanced},
		{"ultra boosts both", QualityUltra, 30, 8.5, EnhancementHD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := c.Optimize(ModelFlux, tt.quality, StyleNone, 1024, 1024, nil, nil)
			assert.Equal(t, tt.steps, params.Steps)
			assert.Equal(t, tt.guidance, params.Guidance)
			assert.Equal(t, tt.enhancement, params.Enhancement)
		})
	}
}

func TestOptimize_ResolutionAdjustment(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name   string
		width  int
		height int
		steps  int
	}{
		{"large image adds 20 percent", 2048, 1024, 24},
		{"small image removes 20 percent", 256, 512, 16},
		{"512x512 is not small", 512, 512, 20},
		{"1024x1024 is not large", 1024, 1024, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := c.Optimize(ModelFlux, QualityStandard, StyleNone, tt.width, tt.height, nil, nil)
			assert.Equal(t, tt.steps, params.Steps)
		})
	}
}

func TestOptimize_UserOverrides(t *testing.T) {
	c := NewCatalog()

	params := c.Optimize(ModelZImage, QualityUltra, "photorealistic", 1024, 1024, intPtr(10), floatPtr(4.2))

	// round(10*1.5)+8 = 23, 4.2+1.0+1.5 = 6.7
	assert.Equal(t, 23, params.Steps)
	assert.Equal(t, 6.7, params.Guidance)
}

func TestOptimize_Clamping(t *testing.T) {
	c := NewCatalog()

	high := c.Optimize(ModelKontext, QualityUltra, "cyberpunk", 2048, 2048, intPtr(500), floatPtr(40))
	assert.Equal(t, 50, high.Steps)
	assert.Equal(t, 15.0, high.Guidance)

	low := c.Optimize(ModelZImage, QualityEconomy, StyleNone, 256, 256, intPtr(0), floatPtr(-3))
	assert.Equal(t, 1, low.Steps)
	assert.Equal(t, 1.0, low.Guidance)
}

func TestOptimize_BoundsForAllInputs(t *testing.T) {
	c := NewCatalog()
	sizes := []int{256, 511, 512, 768, 1024, 1025, 1536, 2048}
	stepOverrides := []*int{nil, intPtr(1), intPtr(50), intPtr(100)}
	guidanceOverrides := []*float64{nil, floatPtr(1), floatPtr(14.95), floatPtr(30)}

	for _, model := range c.ModelIDs() {
		for _, quality := range []QualityTier{QualityEconomy, QualityStandard, QualityUltra} {
			for _, style := range c.Styles() {
				for _, w := range sizes {
					for _, h := range sizes {
						for _, s := range stepOverrides {
							for _, g := range guidanceOverrides {
								params := c.Optimize(model, quality, style, w, h, s, g)
								if params.Steps < 1 || params.Steps > 50 {
									t.Fatalf("steps %d out of range for %s/%s/%s %dx%d", params.Steps, model, quality, style, w, h)
								}
								if params.Guidance < 1.0 || params.Guidance > 15.0 {
									t.Fatalf("guidance %.2f out of range for %s/%s/%s %dx%d", params.Guidance, model, quality, style, w, h)
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestOptimize_GuidanceRoundedToOneDecimal(t *testing.T) {
	c := NewCatalog()

	params := c.Optimize(ModelFlux, QualityStandard, StyleNone, 1024, 1024, nil, floatPtr(3.14159))
	assert.Equal(t, 3.1, params.Guidance)
}
