package generation

import "time"

// Model identifies one of the supported image models.
type Model string

const (
	ModelZImage  Model = "zimage"
	ModelFlux    Model = "flux"
	ModelTurbo   Model = "turbo"
	ModelKontext Model = "kontext"
)

// QualityTier scales the effort spent per image.
type QualityTier string

const (
	QualityEconomy  QualityTier = "economy"
	QualityStandard QualityTier = "standard"
	QualityUltra    QualityTier = "ultra"
)

// StylePreset names an entry of the style catalog.
type StylePreset string

// StyleNone applies no style fragments.
const StyleNone StylePreset = "none"

// Enhancement is the qualitative tag derived from the quality tier.
type Enhancement string

const (
	EnhancementFast     Enhancement = "fast"
	EnhancementBalanced Enhancement = "balanced"
	EnhancementHD       Enhancement = "hd"
)

const (
	MinDimension    = 256
	MaxDimension    = 2048
	MinImages       = 1
	MaxImages       = 4
	MaxPromptLength = 2000
	RandomSeed      = -1
)

// GenerationRequest is a validated "generate an image" call.
type GenerationRequest struct {
	Prompt          string
	Model           Model
	Width           int
	Height          int
	Seed            int64
	Style           StylePreset
	Quality         QualityTier
	Steps           *int
	Guidance        *float64
	N               int
	AutoOptimize    bool
	AutoHD          bool
	ReferenceImages []string
}

// OptimizedParameters are the resolved steps/guidance for one request.
type OptimizedParameters struct {
	Steps       int         `json:"steps"`
	Guidance    float64     `json:"guidance"`
	Enhancement Enhancement `json:"enhancement,omitempty"`
}

// EnrichedPrompt is the prompt text sent to the provider.
type EnrichedPrompt struct {
	Positive string
	Negative string
}

// GenerationResult describes one produced image.
type GenerationResult struct {
	Image           []byte
	MimeType        string
	Seed            int64
	Model           Model
	GenerationTime  time.Duration
	OptimizedPrompt string
}

// Metadata summarises how a request was processed.
type Metadata struct {
	GenerationID     string
	OriginalPrompt   string
	TranslatedPrompt string
	NegativePrompt   string
	OptimizedParams  OptimizedParameters
	Cost             float64
	CacheHit         bool
	CacheKey         string
}

// GenerationResponse aggregates every image of a request. A response is only
// returned on full success; failures surface as errors.
type GenerationResponse struct {
	Success  bool
	Results  []GenerationResult
	Metadata Metadata
}
