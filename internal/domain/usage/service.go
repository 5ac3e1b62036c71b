package usage

import (
	"context"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/utils/platformerrors"
)

// Service records generation usage and reports on it.
type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "usage-service").Logger(),
		now:  time.Now,
	}
}

// RecordGeneration stores the accounting row for resp. Failures are logged and
// never reach the caller of Generate.
func (s *Service) RecordGeneration(ctx context.Context, req generation.GenerationRequest, resp *generation.GenerationResponse, elapsed time.Duration) {
	if resp == nil {
		return
	}

	meta := resp.Metadata
	record := &Record{
		GenerationID: meta.GenerationID,
		Model:        string(req.Model),
		Style:        string(req.Style),
		Quality:      string(req.Quality),
		Width:        req.Width,
		Height:       req.Height,
		Images:       len(resp.Results),
		Steps:        meta.OptimizedParams.Steps,
		Guidance:     meta.OptimizedParams.Guidance,
		CacheHit:     meta.CacheHit,
		Cost:         decimal.NewFromFloat(meta.Cost),
		DurationMs:   elapsed.Milliseconds(),
	}
	if err := s.Record(context.WithoutCancel(ctx), record); err != nil {
		s.log.Error().Err(err).Str("generation_id", meta.GenerationID).Msg("failed to record usage")
	}
}

// Record assigns an ID and timestamp when missing and persists record.
func (s *Service) Record(ctx context.Context, record *Record) error {
	if record.ID == "" {
		record.ID = ulid.Make().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	return s.repo.Create(ctx, record)
}

// Summary totals usage since the given instant, per model and overall.
func (s *Service) Summary(ctx context.Context, since time.Time) (*Summary, error) {
	byModel, err := s.repo.SummarizeByModel(ctx, since)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load usage summary")
	}
	sort.Slice(byModel, func(i, j int) bool { return byModel[i].Model < byModel[j].Model })

	summary := &Summary{
		Since:     since.UTC(),
		TotalCost: decimal.Zero,
		ByModel:   byModel,
	}
	for _, m := range byModel {
		summary.Generations += m.Generations
		summary.Images += m.Images
		summary.CacheHits += m.CacheHits
		summary.TotalCost = summary.TotalCost.Add(m.Cost)
	}
	return summary, nil
}
