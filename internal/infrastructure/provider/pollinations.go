package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"resty.dev/v3"

	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/infrastructure/metrics"
	"github.com/kinai9661/AIPro/internal/utils/httpclients"
)

const (
	promptPath       = "/prompt"
	maxErrorBodySize = 512
)

// Config configures the Pollinations client.
type Config struct {
	BaseURL            string
	APIKey             string
	UserAgent          string
	Timeout            time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// HealthStatus is the result of a provider probe.
type HealthStatus struct {
	Available bool
	Latency   time.Duration
	Status    int
}

// PollinationsClient fetches images from the Pollinations image endpoint.
type PollinationsClient struct {
	client  *resty.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
	tracer  trace.Tracer
}

// NewPollinationsClient builds a rate-limited, circuit-broken client.
func NewPollinationsClient(cfg Config, log zerolog.Logger) *PollinationsClient {
	log = log.With().Str("component", "pollinations-client").Logger()

	client := httpclients.NewClient("pollinations", log).
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("User-Agent", cfg.UserAgent)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	limit := rate.Inf
	burst := cfg.RateLimitBurst
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
	}
	if burst <= 0 {
		burst = 1
	}

	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "pollinations",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return &PollinationsClient{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		breaker: breaker,
		log:     log,
		tracer:  otel.Tracer("pollinations"),
	}
}

// Fetch requests a single image and returns its bytes.
func (c *PollinationsClient) Fetch(ctx context.Context, params generation.FetchParams) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "pollinations.Fetch", trace.WithAttributes(
		attribute.String("provider_model", params.ProviderModel),
		attribute.Int64("seed", params.Seed),
	))
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		span.SetStatus(codes.Error, "rate limit wait")
		return nil, fmt.Errorf("wait for provider rate limit: %w", err)
	}

	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, params)
	})
	metrics.RecordProviderCall(params.ProviderModel, statusLabel(err), time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider call failed")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &generation.ProviderError{
				Status:  http.StatusServiceUnavailable,
				Message: "provider temporarily unavailable (" + err.Error() + ")",
			}
		}
		return nil, err
	}
	return out.([]byte), nil
}

func (c *PollinationsClient) fetch(ctx context.Context, params generation.FetchParams) ([]byte, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(queryParams(params)).
		Get(promptPath)
	if err != nil {
		return nil, fmt.Errorf("pollinations request: %w", err)
	}

	body := resp.Bytes()
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &generation.ProviderError{
			Status:  resp.StatusCode(),
			Message: truncate(strings.TrimSpace(string(body)), maxErrorBodySize),
		}
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "image") {
		return nil, &generation.ProviderError{
			Message: fmt.Sprintf("unexpected content type: %s", contentType),
		}
	}
	if len(body) == 0 {
		return nil, &generation.ProviderError{Message: "empty image payload"}
	}

	c.log.Debug().
		Str("provider_model", params.ProviderModel).
		Int64("seed", params.Seed).
		Int("bytes", len(body)).
		Msg("image received")
	return body, nil
}

// Health issues a HEAD probe with a tiny image request.
func (c *PollinationsClient) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"prompt": "test",
			"model":  "flux",
			"width":  "64",
			"height": "64",
			"seed":   "1",
		}).
		Head(promptPath)

	status := HealthStatus{Latency: time.Since(start)}
	if err != nil {
		c.log.Warn().Err(err).Msg("provider health probe failed")
		metrics.SetProviderHealth(false)
		return status
	}
	status.Status = resp.StatusCode()
	status.Available = resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices
	metrics.SetProviderHealth(status.Available)
	return status
}

// Close releases idle connections.
func (c *PollinationsClient) Close() error {
	return c.client.Close()
}

func queryParams(params generation.FetchParams) map[string]string {
	q := map[string]string{
		"prompt":  params.Prompt,
		"model":   params.ProviderModel,
		"width":   strconv.Itoa(params.Width),
		"height":  strconv.Itoa(params.Height),
		"seed":    strconv.FormatInt(params.Seed, 10),
		"nologo":  strconv.FormatBool(params.NoLogo),
		"enhance": strconv.FormatBool(params.Enhance),
	}
	if len(params.ReferenceImages) > 0 {
		q["image"] = strings.Join(params.ReferenceImages, ",")
	}
	return q
}

// countsAsSuccess keeps caller-side problems from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var providerErr *generation.ProviderError
	if errors.As(err, &providerErr) {
		s := providerErr.Status
		return s >= http.StatusBadRequest && s < http.StatusInternalServerError && s != http.StatusTooManyRequests
	}
	return false
}

func statusLabel(err error) string {
	if err == nil {
		return "success"
	}
	var providerErr *generation.ProviderError
	if errors.As(err, &providerErr) && providerErr.Status != 0 {
		return strconv.Itoa(providerErr.Status)
	}
	if errors.Is(err, gobreaker.ErrOpenState) {
		return "circuit_open"
	}
	return "error"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
