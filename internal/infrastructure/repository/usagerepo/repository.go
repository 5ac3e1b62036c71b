package usagerepo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/kinai9661/AIPro/internal/domain/usage"
	"github.com/kinai9661/AIPro/internal/infrastructure/database/entities"
	"github.com/kinai9661/AIPro/internal/utils/platformerrors"
)

// Repository stores usage records in postgres.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, record *domain.Record) error {
	entity := toEntity(record)
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create usage record",
			err,
			"usage-create-failed",
		)
	}
	return nil
}

type modelRow struct {
	Model       string
	Generations int64
	Images      int64
	CacheHits   int64
	Cost        decimal.Decimal
}

func (r *Repository) SummarizeByModel(ctx context.Context, since time.Time) ([]domain.ModelSummary, error) {
	var rows []modelRow
	err := r.db.WithContext(ctx).
		Model(&entities.GenerationUsage{}).
		Select("model, COUNT(*) AS generations, COALESCE(SUM(images), 0) AS images, "+
			"COALESCE(SUM(CASE WHEN cache_hit THEN 1 ELSE 0 END), 0) AS cache_hits, "+
			"COALESCE(SUM(cost), 0) AS cost").
		Where("created_at >= ?", since).
		Group("model").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to summarize usage",
			err,
			"usage-summary-failed",
		)
	}

	out := make([]domain.ModelSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ModelSummary(row))
	}
	return out, nil
}

func toEntity(record *domain.Record) entities.GenerationUsage {
	return entities.GenerationUsage{
		ID:           record.ID,
		GenerationID: record.GenerationID,
		Model:        record.Model,
		Style:        record.Style,
		Quality:      record.Quality,
		Width:        record.Width,
		Height:       record.Height,
		Images:       record.Images,
		Steps:        record.Steps,
		Guidance:     record.Guidance,
		CacheHit:     record.CacheHit,
		Cost:         record.Cost,
		DurationMs:   record.DurationMs,
		CreatedAt:    record.CreatedAt,
	}
}
