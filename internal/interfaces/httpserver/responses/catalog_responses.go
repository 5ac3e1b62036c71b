package responses

import (
	"time"

	"github.com/kinai9661/AIPro/internal/domain/generation"
)

// StyleResponse is one entry of GET /api/styles.
type StyleResponse struct {
	ID string `json:"id" example:"anime"`
	generation.StyleConfig
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status             string   `json:"status" example:"ok"`
	Version            string   `json:"version" example:"2.0.0"`
	Models             []string `json:"models"`
	Uptime             string   `json:"uptime" example:"1h2m3s"`
	CacheEnabled       bool     `json:"cache_enabled"`
	CacheBackend       string   `json:"cache_backend,omitempty" example:"redis"`
	TranslationEnabled bool     `json:"translation_enabled"`
	ProviderStatus     int      `json:"provider_status,omitempty" example:"200"`
	ProviderLatencyMs  int64    `json:"provider_latency_ms" example:"120"`
}

// CacheClearResponse is the body of POST /api/cache/clear.
type CacheClearResponse struct {
	Success bool   `json:"success" example:"true"`
	Backend string `json:"backend" example:"memory"`
	Removed int    `json:"removed" example:"12"`
	Message string `json:"message"`
}

// NewStyleResponses lists the catalog styles in display order.
func NewStyleResponses(catalog *generation.Catalog) []StyleResponse {
	names := catalog.Styles()
	out := make([]StyleResponse, 0, len(names))
	for _, name := range names {
		out = append(out, StyleResponse{ID: string(name), StyleConfig: catalog.Style(name)})
	}
	return out
}

// FormatUptime renders d rounded to seconds.
func FormatUptime(d time.Duration) string {
	return d.Round(time.Second).String()
}
