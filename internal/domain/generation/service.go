package generation

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCacheTTL is how long a cached image stays reproducible.
	DefaultCacheTTL = 24 * time.Hour

	maxRandomSeed = 1_000_000
	tracerName    = "generation"
)

// FetchParams is one provider call.
type FetchParams struct {
	ProviderModel   string
	Prompt          string
	Width           int
	Height          int
	Seed            int64
	NoLogo          bool
	Enhance         bool
	ReferenceImages []string
}

// ProviderClient produces raw image bytes. Implementations own timeouts and
// retries; failures should wrap *ProviderError where an upstream status exists.
type ProviderClient interface {
	Fetch(ctx context.Context, params FetchParams) ([]byte, error)
}

// CacheStore keeps generated payloads by key.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// UsageRecorder receives every successful generation for cost accounting.
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, req GenerationRequest, resp *GenerationResponse, elapsed time.Duration)
}

// PromptSanitizer redacts prompts before they are logged.
type PromptSanitizer interface {
	SanitizePrompt(input string) string
}

// Options tune the orchestrator.
type Options struct {
	CacheTTL        time.Duration
	CacheKeyPrefix  string
	ConcurrentBatch bool
}

// Service drives the generation pipeline:
// validate → translate → optimize → enrich → cache check → dispatch.
type Service struct {
	catalog    *Catalog
	translator *Translator
	provider   ProviderClient
	cache      CacheStore
	usage      UsageRecorder
	sanitizer  PromptSanitizer
	opts       Options
	log        zerolog.Logger
	tracer     trace.Tracer

	now  func() time.Time
	seed func() int64
}

// NewService wires the pipeline. cache, usage and sanitizer may be nil.
func NewService(
	catalog *Catalog,
	translator *Translator,
	provider ProviderClient,
	cache CacheStore,
	usage UsageRecorder,
	sanitizer PromptSanitizer,
	opts Options,
	log zerolog.Logger,
) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CacheKeyPrefix == "" {
		opts.CacheKeyPrefix = DefaultCacheKeyPrefix
	}
	if translator == nil {
		translator = NewTranslator(nil, log)
	}
	return &Service{
		catalog:    catalog,
		translator: translator,
		provider:   provider,
		cache:      cache,
		usage:      usage,
		sanitizer:  sanitizer,
		opts:       opts,
		log:        log.With().Str("component", "generation-service").Logger(),
		tracer:     otel.Tracer(tracerName),
		now:        time.Now,
		seed: func() int64 {
			return rand.Int64N(maxRandomSeed)
		},
	}
}

// Catalog exposes the shared read-only tables.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// CacheEnabled reports whether a cache store is configured.
func (s *Service) CacheEnabled() bool {
	return s.cache != nil
}

// TranslationEnabled reports whether a translation backend is configured.
func (s *Service) TranslationEnabled() bool {
	return s.translator.Enabled()
}

// Generate runs the full pipeline for req. It either returns every requested
// image or an error; there is no partial success.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "generation.Service.Generate",
		trace.WithAttributes(
			attribute.String("model", string(req.Model)),
			attribute.String("style", string(req.Style)),
			attribute.String("quality", string(req.Quality)),
			attribute.Int("width", req.Width),
			attribute.Int("height", req.Height),
			attribute.Int("n", req.N),
		))
	defer span.End()

	start := s.now()

	span.AddEvent("validating")
	if err := s.catalog.Validate(ctx, req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}
	model, _ := s.catalog.Model(req.Model)

	span.AddEvent("enriching")
	prompt := req.Prompt
	if req.AutoOptimize {
		prompt = s.translator.Translate(ctx, req.Prompt)
	}
	params := s.catalog.Optimize(req.Model, req.Quality, req.Style, req.Width, req.Height, req.Steps, req.Guidance)
	enriched := s.catalog.Enrich(prompt, req.Style)

	cacheKey := DeriveKey(s.opts.CacheKeyPrefix, CacheKeyParams{
		Prompt:   enriched.Positive,
		Model:    req.Model,
		Width:    req.Width,
		Height:   req.Height,
		Seed:     req.Seed,
		Style:    req.Style,
		Steps:    params.Steps,
		Guidance: params.Guidance,
	})

	meta := Metadata{
		GenerationID:    ulid.Make().String(),
		OriginalPrompt:  req.Prompt,
		NegativePrompt:  enriched.Negative,
		OptimizedParams: params,
		CacheKey:        cacheKey,
	}
	if prompt != req.Prompt {
		meta.TranslatedPrompt = prompt
	}

	log := s.log.With().
		Str("generation_id", meta.GenerationID).
		Str("model", string(req.Model)).
		Str("cache_key", cacheKey).
		Logger()
	log.Info().
		Str("prompt", s.sanitize(enriched.Positive)).
		Int("steps", params.Steps).
		Float64("guidance", params.Guidance).
		Int("n", req.N).
		Msg("generation started")

	span.AddEvent("cache_check")
	if cached, ok := s.lookup(ctx, log, cacheKey); ok {
		span.AddEvent("cache_hit")
		meta.CacheHit = true
		resp := &GenerationResponse{
			Success: true,
			Results: []GenerationResult{{
				Image:          cached,
				MimeType:       detectMime(cached),
				Seed:           req.Seed,
				Model:          req.Model,
				GenerationTime: s.now().Sub(start),
			}},
			Metadata: meta,
		}
		s.record(ctx, req, resp, start)
		log.Info().Dur("elapsed", s.now().Sub(start)).Msg("generation served from cache")
		return resp, nil
	}

	span.AddEvent("dispatching")
	optimizedPrompt := ""
	if enriched.Positive != req.Prompt {
		optimizedPrompt = enriched.Positive
	}
	fetch := FetchParams{
		ProviderModel:   model.ProviderName,
		Prompt:          enriched.Positive,
		Width:           req.Width,
		Height:          req.Height,
		NoLogo:          true,
		Enhance:         req.AutoHD && req.Quality == QualityUltra,
		ReferenceImages: req.ReferenceImages,
	}

	results := make([]GenerationResult, req.N)
	seeds := s.resolveSeeds(req)
	generateOne := func(ctx context.Context, i int) error {
		call := fetch
		call.Seed = seeds[i]
		payload, err := s.provider.Fetch(ctx, call)
		if err != nil {
			return wrapProviderError(ctx, i, err)
		}
		results[i] = GenerationResult{
			Image:           payload,
			MimeType:        detectMime(payload),
			Seed:            seeds[i],
			Model:           req.Model,
			GenerationTime:  s.now().Sub(start),
			OptimizedPrompt: optimizedPrompt,
		}
		if i == 0 {
			// Only the first image is cached, under the request-level key.
			s.store(ctx, log, cacheKey, payload)
		}
		return nil
	}

	if err := s.dispatch(ctx, req.N, generateOne); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		log.Error().Err(err).Msg("generation failed")
		return nil, err
	}

	cost, _ := decimal.NewFromFloat(model.CostMultiplier).Mul(decimal.NewFromInt(int64(req.N))).Float64()
	meta.Cost = cost

	resp := &GenerationResponse{
		Success:  true,
		Results:  results,
		Metadata: meta,
	}
	s.record(ctx, req, resp, start)

	log.Info().
		Int("images", len(results)).
		Float64("cost", cost).
		Dur("elapsed", s.now().Sub(start)).
		Msg("generation completed")
	span.SetAttributes(attribute.Float64("cost", cost))
	return resp, nil
}

// resolveSeeds fixes the per-image seeds before dispatch so concurrent and
// sequential batches agree: request seed + i, or a fresh random seed per image.
func (s *Service) resolveSeeds(req GenerationRequest) []int64 {
	seeds := make([]int64, req.N)
	for i := range seeds {
		if req.Seed == RandomSeed {
			seeds[i] = s.seed()
			continue
		}
		seeds[i] = req.Seed + int64(i)
	}
	return seeds
}

func (s *Service) dispatch(ctx context.Context, n int, fn func(context.Context, int) error) error {
	if !s.opts.ConcurrentBatch || n == 1 {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

func (s *Service) lookup(ctx context.Context, log zerolog.Logger, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("cache lookup failed, treating as miss")
		return nil, false
	}
	if !ok || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *Service) store(ctx context.Context, log zerolog.Logger, key string, data []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, key, data, s.opts.CacheTTL); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
}

func (s *Service) record(ctx context.Context, req GenerationRequest, resp *GenerationResponse, start time.Time) {
	if s.usage == nil {
		return
	}
	s.usage.RecordGeneration(ctx, req, resp, s.now().Sub(start))
}

func (s *Service) sanitize(prompt string) string {
	if s.sanitizer == nil {
		return prompt
	}
	return s.sanitizer.SanitizePrompt(prompt)
}

func detectMime(data []byte) string {
	return mimetype.Detect(data).String()
}
