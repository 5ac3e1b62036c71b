//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/kinai9661/AIPro/internal/config"
	"github.com/kinai9661/AIPro/internal/domain/usage"
	"github.com/kinai9661/AIPro/internal/infrastructure/provider"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/handlers"
)

var generationSet = wire.NewSet(
	newCatalog,
	newTranslator,
	newProviderClient,
	wire.Bind(new(handlers.ProviderProbe), new(*provider.PollinationsClient)),
	newCacheStore,
	newPromptSanitizer,
	newGenerationService,
)

var usageSet = wire.NewSet(
	newUsageRepository,
	usage.NewService,
	newUsageRecorder,
)

// BuildApplication assembles the image API with Wire.
func BuildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, func(), error) {
	wire.Build(
		generationSet,
		usageSet,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}
