package handlers

import (
	"github.com/rs/zerolog"

	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/domain/usage"
	"github.com/kinai9661/AIPro/internal/infrastructure/cache"
)

// Provider wires HTTP handlers.
type Provider struct {
	Generation *GenerationHandler
	Catalog    *CatalogHandler
	Health     *HealthHandler
	Cache      *CacheHandler
	Usage      *UsageHandler
}

func NewProvider(
	service *generation.Service,
	usageService *usage.Service,
	probe ProviderProbe,
	store cache.Store,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Generation: NewGenerationHandler(service, log),
		Catalog:    NewCatalogHandler(service.Catalog()),
		Health:     NewHealthHandler(service, probe, store),
		Cache:      NewCacheHandler(store, log),
		Usage:      NewUsageHandler(usageService),
	}
}
