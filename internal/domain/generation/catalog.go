package generation

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModelConfig is the static per-model record.
type ModelConfig struct {
	ID                Model    `json:"id"`
	ProviderName      string   `json:"-"`
	DisplayName       string   `json:"name"`
	Description       string   `json:"description"`
	DefaultSteps      int      `json:"default_steps"`
	DefaultGuidance   float64  `json:"default_guidance"`
	MaxSize           int      `json:"max_size"`
	SupportsReference bool     `json:"supports_reference"`
	CostMultiplier    float64  `json:"cost"`
	Speed             int      `json:"speed"`
	QualityScore      int      `json:"quality"`
	Features          []string `json:"features,omitempty"`
}

// StyleConfig holds the prompt fragments and parameter deltas of a preset.
type StyleConfig struct {
	Positive      string  `json:"positive" yaml:"positive"`
	Negative      string  `json:"negative" yaml:"negative"`
	GuidanceDelta float64 `json:"guidance_delta" yaml:"guidance_delta"`
	StepsDelta    int     `json:"steps_delta" yaml:"steps_delta"`
}

type qualityAdjustment struct {
	stepsMultiplier float64
	guidanceBoost   float64
	enhancement     Enhancement
}

// Catalog is the read-only configuration shared by every request. Build it
// once at startup and pass it by pointer.
type Catalog struct {
	models  map[Model]ModelConfig
	order   []Model
	styles  map[StylePreset]StyleConfig
	quality map[QualityTier]qualityAdjustment
}

const defaultNegative = "blurry, low quality, distorted"

var defaultModels = []ModelConfig{
	{
		ID:              ModelZImage,
		ProviderName:    "zimage",
		DisplayName:     "Z-Image Turbo",
		Description:     "Very fast generation (3-8s)",
		DefaultSteps:    4,
		DefaultGuidance: 3.5,
		MaxSize:         1536,
		CostMultiplier:  0.0002,
		Speed:           5,
		QualityScore:    3,
	},
	{
		ID:              ModelFlux,
		ProviderName:    "flux",
		DisplayName:     "Flux Standard",
		Description:     "Balanced speed and quality (recommended)",
		DefaultSteps:    20,
		DefaultGuidance: 7.5,
		MaxSize:         2048,
		CostMultiplier:  0.00012,
		Speed:           4,
		QualityScore:    4,
	},
	{
		ID:              ModelTurbo,
		ProviderName:    "flux-realism",
		DisplayName:     "Flux Turbo",
		Description:     "Fast, high quality (5-10s)",
		DefaultSteps:    8,
		DefaultGuidance: 3.5,
		MaxSize:         1536,
		CostMultiplier:  0.0003,
		Speed:           4,
		QualityScore:    3,
	},
	{
		ID:                ModelKontext,
		ProviderName:      "kontext",
		DisplayName:       "Kontext",
		Description:       "Image-to-image, highest quality",
		DefaultSteps:      25,
		DefaultGuidance:   7.5,
		MaxSize:           1536,
		SupportsReference: true,
		CostMultiplier:    0.04,
		Speed:             3,
		QualityScore:      5,
		Features:          []string{"image-to-image", "style-transfer"},
	},
}

var tunedStyles = map[StylePreset]StyleConfig{
	StyleNone: {
		Negative: defaultNegative,
	},
	"anime": {
		Positive:      "anime style, manga art, vibrant colors, detailed shading, studio quality",
		Negative:      "realistic, photograph, 3d render, blurry, low quality",
		GuidanceDelta: 1.0,
		StepsDelta:    5,
	},
	"photorealistic": {
		Positive:      "photorealistic, ultra detailed, 8k uhd, professional photography, sharp focus, natural lighting",
		Negative:      "cartoon, anime, painting, drawing, blurry, low quality",
		GuidanceDelta: 1.5,
		StepsDelta:    8,
	},
	"oil-painting": {
		Positive:      "oil painting, classical art, fine art, textured brush strokes, museum quality",
		Negative:      "photograph, digital art, low quality, blurry",
		GuidanceDelta: 1.0,
		StepsDelta:    5,
	},
	"watercolor": {
		Positive:      "watercolor painting, soft edges, flowing colors, artistic, traditional media",
		Negative:      "photograph, digital, sharp edges, low quality",
		GuidanceDelta: 0.5,
		StepsDelta:    3,
	},
	"cyberpunk": {
		Positive:      "cyberpunk style, neon lights, futuristic, high tech, dark atmosphere, cinematic",
		Negative:      "medieval, historical, natural, blurry, low quality",
		GuidanceDelta: 1.5,
		StepsDelta:    8,
	},
	"fantasy": {
		Positive:      "fantasy art, magical, epic, detailed, concept art, dramatic lighting",
		Negative:      "realistic, modern, photograph, blurry, low quality",
		GuidanceDelta: 1.0,
		StepsDelta:    5,
	},
	"minimalist": {
		Positive:      "minimalist, clean, simple, modern, professional, elegant composition",
		Negative:      "cluttered, busy, complex, ornate, low quality",
		GuidanceDelta: 0.5,
		StepsDelta:    3,
	},
}

// Presets offered by the web client that only contribute a positive fragment.
var fragmentStyles = map[StylePreset]string{
	"manga":              "manga style, black and white, ink drawing",
	"comic-book":         "comic book style, bold lines, superhero art",
	"cartoon":            "cartoon style, cute, simplified shapes",
	"pixel-art":          "pixel art, 8-bit, retro game style",
	"line-art":           "line art, clean lines, no color",
	"sketch":             "pencil sketch, hand drawn",
	"digital-art":        "digital art, modern illustration",
	"portrait":           "professional portrait photography",
	"landscape":          "landscape photography, natural scenery",
	"cinematic":          "cinematic, movie scene, dramatic lighting",
	"documentary":        "documentary style, realistic",
	"studio-photo":       "studio photography, professional lighting",
	"street-photography": "street photography, candid moment",
	"macro":              "macro photography, extreme close-up",
	"sci-fi":             "sci-fi, futuristic, high-tech",
	"steampunk":          "steampunk, victorian era, brass and steam",
	"gothic":             "gothic, dark aesthetic",
	"dark-fantasy":       "dark fantasy, grim atmosphere",
	"mythological":       "mythological, ancient gods",
	"surreal":            "surreal, dreamlike, abstract",
	"abstract":           "abstract art, geometric shapes",
	"pop-art":            "pop art, bright colors, bold style",
	"graffiti":           "graffiti art, street art",
	"low-poly":           "low poly, 3D geometric",
	"vaporwave":          "vaporwave, 80s retro futuristic",
	"synthwave":          "synthwave, neon, retro futuristic",
	"renaissance":        "renaissance painting style",
	"baroque":            "baroque art, ornate, dramatic",
	"impressionist":      "impressionist painting",
	"art-nouveau":        "art nouveau, decorative",
	"art-deco":           "art deco, 1920s style",
	"ukiyo-e":            "ukiyo-e, japanese woodblock print",
	"noir":               "film noir, black and white",
	"vintage":            "vintage, old photo aesthetic",
	"retro":              "retro, 50s-80s style",
	"horror":             "horror, dark, scary atmosphere",
	"ethereal":           "ethereal, dreamy, light",
}

// NewCatalog builds the default model, quality and style tables.
func NewCatalog() *Catalog {
	c := &Catalog{
		models: make(map[Model]ModelConfig, len(defaultModels)),
		styles: make(map[StylePreset]StyleConfig, len(tunedStyles)+len(fragmentStyles)),
		quality: map[QualityTier]qualityAdjustment{
			QualityEconomy:  {stepsMultiplier: 0.5, guidanceBoost: 0, enhancement: EnhancementFast},
			QualityStandard: {stepsMultiplier: 1.0, guidanceBoost: 0, enhancement: EnhancementBalanced},
			QualityUltra:    {stepsMultiplier: 1.5, guidanceBoost: 1.0, enhancement: EnhancementHD},
		},
	}
	for _, m := range defaultModels {
		c.models[m.ID] = m
		c.order = append(c.order, m.ID)
	}
	for name, positive := range fragmentStyles {
		c.styles[name] = StyleConfig{Positive: positive, Negative: defaultNegative}
	}
	for name, style := range tunedStyles {
		c.styles[name] = style
	}
	return c
}

// LoadStyleOverlay merges presets from a YAML file of the form
//
//	styles:
//	  neon-noir:
//	    positive: "..."
//	    negative: "..."
//	    guidance_delta: 1.0
//	    steps_delta: 4
//
// Entries replace built-in presets with the same name. Call before the catalog
// is shared.
func (c *Catalog) LoadStyleOverlay(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read style catalog: %w", err)
	}

	var doc struct {
		Styles map[string]StyleConfig `yaml:"styles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("parse style catalog: %w", err)
	}

	for name, style := range doc.Styles {
		key := StylePreset(strings.ToLower(strings.TrimSpace(name)))
		if key == "" {
			continue
		}
		if key == StyleNone {
			style.Positive = ""
		}
		c.styles[key] = style
	}
	return len(doc.Styles), nil
}

// Model returns the configuration for m.
func (c *Catalog) Model(m Model) (ModelConfig, bool) {
	cfg, ok := c.models[m]
	return cfg, ok
}

// Models lists the model table in declaration order.
func (c *Catalog) Models() []ModelConfig {
	out := make([]ModelConfig, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.models[id])
	}
	return out
}

// ModelIDs lists the supported model identifiers.
func (c *Catalog) ModelIDs() []Model {
	return append([]Model(nil), c.order...)
}

// Style returns the preset, falling back to "none" for unknown names.
func (c *Catalog) Style(s StylePreset) StyleConfig {
	if style, ok := c.styles[s]; ok {
		return style
	}
	return c.styles[StyleNone]
}

// HasStyle reports whether s is a catalog entry.
func (c *Catalog) HasStyle(s StylePreset) bool {
	_, ok := c.styles[s]
	return ok
}

// Styles returns the style names sorted alphabetically with "none" first.
func (c *Catalog) Styles() []StylePreset {
	names := make([]StylePreset, 0, len(c.styles))
	for name := range c.styles {
		if name != StyleNone {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return append([]StylePreset{StyleNone}, names...)
}

// HasQuality reports whether q is a known quality tier.
func (c *Catalog) HasQuality(q QualityTier) bool {
	_, ok := c.quality[q]
	return ok
}
