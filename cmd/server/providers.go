package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kinai9661/AIPro/internal/config"
	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/domain/usage"
	"github.com/kinai9661/AIPro/internal/infrastructure/cache"
	"github.com/kinai9661/AIPro/internal/infrastructure/database"
	"github.com/kinai9661/AIPro/internal/infrastructure/provider"
	"github.com/kinai9661/AIPro/internal/infrastructure/repository/usagerepo"
	"github.com/kinai9661/AIPro/internal/infrastructure/translation"
	"github.com/kinai9661/AIPro/pkg/telemetry"
)

func newCatalog(cfg *config.Config, log zerolog.Logger) (*generation.Catalog, error) {
	catalog := generation.NewCatalog()
	if cfg.StyleCatalogFile == "" {
		return catalog, nil
	}
	n, err := catalog.LoadStyleOverlay(cfg.StyleCatalogFile)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", cfg.StyleCatalogFile).Int("styles", n).Msg("loaded style catalog overlay")
	return catalog, nil
}

func newProviderClient(cfg *config.Config, log zerolog.Logger) (*provider.PollinationsClient, func()) {
	client := provider.NewPollinationsClient(provider.Config{
		BaseURL:            cfg.PollinationsBaseURL,
		APIKey:             cfg.PollinationsAPIKey,
		UserAgent:          cfg.ProviderUserAgent,
		Timeout:            cfg.ProviderTimeout,
		RateLimitRPS:       cfg.ProviderRateLimitRPS,
		RateLimitBurst:     cfg.ProviderRateBurst,
		BreakerMaxFailures: cfg.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.BreakerOpenTimeout,
	}, log)
	return client, func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("close provider client")
		}
	}
}

func newTranslator(cfg *config.Config, log zerolog.Logger) (*generation.Translator, func()) {
	if !cfg.TranslationEnabled {
		return generation.NewTranslator(nil, log), func() {}
	}
	client := translation.NewCloudflareTranslator(translation.Config{
		BaseURL:   cfg.CloudflareBaseURL,
		AccountID: cfg.CloudflareAccountID,
		APIToken:  cfg.CloudflareAPIToken,
		Model:     cfg.TranslationModel,
		Timeout:   cfg.TranslationTimeout,
	}, log)
	return generation.NewTranslator(client, log), func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("close translation client")
		}
	}
}

func newCacheStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Store, func(), error) {
	store, err := cache.New(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		return nil, func() {}, nil
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close cache store")
		}
	}, nil
}

// newUsageRepository uses PostgreSQL when USAGE_DATABASE_DSN is set and an
// in-process ledger otherwise.
func newUsageRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (usage.Repository, func(), error) {
	if !cfg.UsageStoreEnabled() {
		return usagerepo.NewMemoryRepository(0), func() {}, nil
	}

	db, err := database.Connect(database.Config{
		DSN:             cfg.UsageDatabaseDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("migrate usage database: %w", err)
	}
	return usagerepo.NewRepository(db), func() {
		if err := database.Close(db); err != nil {
			log.Warn().Err(err).Msg("close usage database")
		}
	}, nil
}

func newPromptSanitizer(cfg *config.Config) *telemetry.PromptSanitizer {
	return telemetry.NewPromptSanitizer(cfg.PromptLogLevel, cfg.PromptLogSalt)
}

// newUsageRecorder queues usage writes so the repository never adds latency
// to a generation. The cleanup drains the queue before the repository closes.
func newUsageRecorder(cfg *config.Config, usageService *usage.Service, log zerolog.Logger) (*usage.AsyncRecorder, func()) {
	recorder := usage.NewAsyncRecorder(usageService, cfg.UsageQueueSize, log)
	return recorder, recorder.Close
}

func newGenerationService(
	cfg *config.Config,
	catalog *generation.Catalog,
	translator *generation.Translator,
	client *provider.PollinationsClient,
	store cache.Store,
	recorder *usage.AsyncRecorder,
	sanitizer *telemetry.PromptSanitizer,
	log zerolog.Logger,
) *generation.Service {
	var cacheStore generation.CacheStore
	if store != nil {
		cacheStore = store
	}
	return generation.NewService(catalog, translator, client, cacheStore, recorder, sanitizer, generation.Options{
		CacheTTL:        cfg.CacheTTL,
		CacheKeyPrefix:  cfg.CacheKeyPrefix,
		ConcurrentBatch: cfg.ConcurrentBatch,
	}, log)
}
