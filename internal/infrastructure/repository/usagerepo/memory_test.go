package usagerepo

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/kinai9661/AIPro/internal/domain/usage"
)

func TestMemoryRepository_Summarize(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(0)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.Record{
		{ID: "1", Model: "flux", Images: 3, Cost: decimal.RequireFromString("0.00036"), CreatedAt: base.Add(-time.Hour)},
		{ID: "2", Model: "flux", Images: 1, Cost: decimal.RequireFromString("0.00012"), CreatedAt: base},
		{ID: "3", Model: "flux", Images: 1, CacheHit: true, Cost: decimal.Zero, CreatedAt: base.Add(time.Minute)},
		{ID: "4", Model: "kontext", Images: 2, Cost: decimal.RequireFromString("0.08"), CreatedAt: base.Add(time.Hour)},
	}
	for i := range records {
		require.NoError(t, repo.Create(ctx, &records[i]))
	}

	out, err := repo.SummarizeByModel(ctx, base)
	require.NoError(t, err)
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })

	require.Len(t, out, 2)
	assert.Equal(t, "flux", out[0].Model)
	assert.Equal(t, int64(2), out[0].Generations)
	assert.Equal(t, int64(2), out[0].Images)
	assert.Equal(t, int64(1), out[0].CacheHits)
	assert.True(t, decimal.RequireFromString("0.00012").Equal(out[0].Cost))

	assert.Equal(t, "kontext", out[1].Model)
	assert.True(t, decimal.RequireFromString("0.08").Equal(out[1].Cost))
}

func TestMemoryRepository_Limit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(2)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Record{Model: "flux", Images: 1, Cost: decimal.Zero}))
	}

	out, err := repo.SummarizeByModel(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].Generations)
}

func TestToEntity(t *testing.T) {
	now := time.Now().UTC()
	record := &domain.Record{
		ID:           "01J",
		GenerationID: "01K",
		Model:        "turbo",
		Style:        "anime",
		Quality:      "ultra",
		Width:        1024,
		Height:       768,
		Images:       2,
		Steps:        20,
		Guidance:     6.5,
		CacheHit:     false,
		Cost:         decimal.RequireFromString("0.0006"),
		DurationMs:   1500,
		CreatedAt:    now,
	}

	entity := toEntity(record)
	assert.Equal(t, "01J", entity.ID)
	assert.Equal(t, "turbo", entity.Model)
	assert.Equal(t, 2, entity.Images)
	assert.True(t, record.Cost.Equal(entity.Cost))
	assert.Equal(t, now, entity.CreatedAt)
	assert.Equal(t, "generation_usage", entity.TableName())
}
