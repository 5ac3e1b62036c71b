package responses

import (
	"encoding/base64"

	"github.com/kinai9661/AIPro/internal/domain/generation"
)

// GenerateResponse is the JSON body of a successful generation.
type GenerateResponse struct {
	Success  bool               `json:"success" example:"true"`
	Data     []GeneratedImage   `json:"data"`
	Metadata GenerationMetadata `json:"metadata"`
}

// GeneratedImage is one produced image rendered as a data URI.
type GeneratedImage struct {
	Image           string `json:"image" example:"data:image/png;base64,iVBORw0KGgo="`
	Seed            int64  `json:"seed" example:"42"`
	Model           string `json:"model" example:"flux"`
	GenerationTime  int64  `json:"generation_time" example:"5400"`
	OptimizedPrompt string `json:"optimized_prompt,omitempty"`
}

// GenerationMetadata mirrors generation.Metadata for the wire.
type GenerationMetadata struct {
	GenerationID     string                         `json:"generation_id"`
	OriginalPrompt   string                         `json:"original_prompt"`
	TranslatedPrompt string                         `json:"translated_prompt,omitempty"`
	NegativePrompt   string                         `json:"negative_prompt,omitempty"`
	OptimizedParams  generation.OptimizedParameters `json:"optimized_params"`
	Cost             float64                        `json:"cost"`
	CacheHit         bool                           `json:"cache_hit"`
}

// NewGenerateResponse converts the domain response.
func NewGenerateResponse(resp *generation.GenerationResponse) GenerateResponse {
	out := GenerateResponse{
		Success: resp.Success,
		Data:    make([]GeneratedImage, 0, len(resp.Results)),
		Metadata: GenerationMetadata{
			GenerationID:     resp.Metadata.GenerationID,
			OriginalPrompt:   resp.Metadata.OriginalPrompt,
			TranslatedPrompt: resp.Metadata.TranslatedPrompt,
			NegativePrompt:   resp.Metadata.NegativePrompt,
			OptimizedParams:  resp.Metadata.OptimizedParams,
			Cost:             resp.Metadata.Cost,
			CacheHit:         resp.Metadata.CacheHit,
		},
	}
	for _, r := range resp.Results {
		out.Data = append(out.Data, GeneratedImage{
			Image:           DataURI(r.MimeType, r.Image),
			Seed:            r.Seed,
			Model:           string(r.Model),
			GenerationTime:  r.GenerationTime.Milliseconds(),
			OptimizedPrompt: r.OptimizedPrompt,
		})
	}
	return out
}

// DataURI encodes data as data:<mime>;base64,<payload>.
func DataURI(mime string, data []byte) string {
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
