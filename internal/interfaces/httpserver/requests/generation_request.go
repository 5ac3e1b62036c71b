package requests

import (
	"strings"

	"github.com/kinai9661/AIPro/internal/domain/generation"
)

// GenerateRequest is the JSON body of POST /api/generate.
// @Description Image generation request
type GenerateRequest struct {
	// Prompt describes the image. 1-2000 characters.
	Prompt string `json:"prompt" example:"a cat" jsonschema:"required,minLength=1,maxLength=2000"`
	// Model is one of zimage, flux, turbo, kontext.
	Model string `json:"model" example:"flux" jsonschema:"enum=zimage,enum=flux,enum=turbo,enum=kontext,default=flux"`
	// Width in pixels.
	Width int `json:"width" example:"1024" jsonschema:"minimum=256,maximum=2048,default=1024"`
	// Height in pixels.
	Height int `json:"height" example:"1024" jsonschema:"minimum=256,maximum=2048,default=1024"`
	// Seed for the first image; -1 picks a random seed per image.
	Seed int64 `json:"seed" example:"42" jsonschema:"default=-1"`
	// Style is a preset from GET /api/styles.
	Style string `json:"style" example:"anime" jsonschema:"default=none"`
	// QualityMode is one of economy, standard, ultra.
	QualityMode string `json:"quality_mode" example:"standard" jsonschema:"enum=economy,enum=standard,enum=ultra,default=standard"`
	// Steps overrides the model default step count.
	Steps *int `json:"steps,omitempty" jsonschema:"minimum=1,maximum=50"`
	// Guidance overrides the model default guidance scale.
	Guidance *float64 `json:"guidance,omitempty" jsonschema:"minimum=1,maximum=15"`
	// N is the number of images.
	N int `json:"n" example:"1" jsonschema:"minimum=1,maximum=4,default=1"`
	// AutoOptimize enables prompt translation.
	AutoOptimize bool `json:"auto_optimize" jsonschema:"default=true"`
	// AutoHD asks the provider to enhance ultra quality requests.
	AutoHD bool `json:"auto_hd"`
	// ReferenceImages are image URLs for models that accept them.
	ReferenceImages []string `json:"reference_images,omitempty"`
}

// NewGenerateRequest returns a request pre-filled with defaults. Binding JSON
// onto it only overwrites the fields the caller sent.
func NewGenerateRequest() GenerateRequest {
	return GenerateRequest{
		Model:        string(generation.ModelFlux),
		Width:        1024,
		Height:       1024,
		Seed:         generation.RandomSeed,
		Style:        string(generation.StyleNone),
		QualityMode:  string(generation.QualityStandard),
		N:            1,
		AutoOptimize: true,
	}
}

// ToDomain converts the body into a generation request. Empty enum strings
// fall back to the defaults.
func (r GenerateRequest) ToDomain() generation.GenerationRequest {
	defaults := NewGenerateRequest()
	return generation.GenerationRequest{
		Prompt:          r.Prompt,
		Model:           generation.Model(orDefault(r.Model, defaults.Model)),
		Width:           r.Width,
		Height:          r.Height,
		Seed:            r.Seed,
		Style:           generation.StylePreset(orDefault(r.Style, defaults.Style)),
		Quality:         generation.QualityTier(orDefault(r.QualityMode, defaults.QualityMode)),
		Steps:           r.Steps,
		Guidance:        r.Guidance,
		N:               r.N,
		AutoOptimize:    r.AutoOptimize,
		AutoHD:          r.AutoHD,
		ReferenceImages: r.ReferenceImages,
	}
}

func orDefault(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}
