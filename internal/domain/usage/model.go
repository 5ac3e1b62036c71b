package usage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the accounting row for one served generation request. It never
// carries prompts or image bytes.
type Record struct {
	ID           string
	GenerationID string
	Model        string
	Style        string
	Quality      string
	Width        int
	Height       int
	Images       int
	Steps        int
	Guidance     float64
	CacheHit     bool
	Cost         decimal.Decimal
	DurationMs   int64
	CreatedAt    time.Time
}

// ModelSummary aggregates records of one model.
type ModelSummary struct {
	Model       string          `json:"model"`
	Generations int64           `json:"generations"`
	Images      int64           `json:"images"`
	CacheHits   int64           `json:"cache_hits"`
	Cost        decimal.Decimal `json:"cost"`
}

// Summary is the usage report over a window.
type Summary struct {
	Since       time.Time       `json:"since"`
	Generations int64           `json:"generations"`
	Images      int64           `json:"images"`
	CacheHits   int64           `json:"cache_hits"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	ByModel     []ModelSummary  `json:"by_model"`
}

// Repository persists usage records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	SummarizeByModel(ctx context.Context, since time.Time) ([]ModelSummary, error)
}
