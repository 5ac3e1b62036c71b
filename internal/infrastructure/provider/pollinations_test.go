package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinai9661/AIPro/internal/domain/generation"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(cfg *Config)) (*PollinationsClient, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := Config{
		BaseURL:            srv.URL,
		APIKey:             "secret",
		UserAgent:          "Flux-AI-Pro-V2/2.0.0",
		Timeout:            5 * time.Second,
		BreakerMaxFailures: 5,
		BreakerOpenTimeout: time.Minute,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	client := NewPollinationsClient(cfg, zerolog.Nop())
	t.Cleanup(func() { _ = client.Close() })
	return client, &hits
}

func sampleParams() generation.FetchParams {
	return generation.FetchParams{
		ProviderModel: "flux-realism",
		Prompt:        "a cat, anime style",
		Width:         1024,
		Height:        768,
		Seed:          42,
		NoLogo:        true,
	}
}

func TestFetch_Success(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/prompt", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "a cat, anime style", q.Get("prompt"))
		assert.Equal(t, "flux-realism", q.Get("model"))
		assert.Equal(t, "1024", q.Get("width"))
		assert.Equal(t, "768", q.Get("height"))
		assert.Equal(t, "42", q.Get("seed"))
		assert.Equal(t, "true", q.Get("nologo"))
		assert.Equal(t, "false", q.Get("enhance"))
		assert.False(t, q.Has("image"))

		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "Flux-AI-Pro-V2/2.0.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}, nil)

	data, err := client.Fetch(context.Background(), sampleParams())
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetch_ReferenceImages(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://a.example/1.png,https://a.example/2.png", r.URL.Query().Get("image"))
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}, nil)

	params := sampleParams()
	params.ProviderModel = "kontext"
	params.ReferenceImages = []string{"https://a.example/1.png", "https://a.example/2.png"}

	_, err := client.Fetch(context.Background(), params)
	require.NoError(t, err)
}

func TestFetch_NoAPIKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}, func(cfg *Config) { cfg.APIKey = "" })

	_, err := client.Fetch(context.Background(), sampleParams())
	require.NoError(t, err)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
		message string
	}{
		{
			name: "upstream failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("model overloaded\n"))
			},
			status:  http.StatusInternalServerError,
			message: "model overloaded",
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			status: http.StatusTooManyRequests,
		},
		{
			name: "non-image payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte("<html>captcha</html>"))
			},
			message: "unexpected content type: text/html; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler, nil)

			_, err := client.Fetch(context.Background(), sampleParams())
			require.Error(t, err)

			var providerErr *generation.ProviderError
			require.True(t, errors.As(err, &providerErr))
			assert.Equal(t, tt.status, providerErr.Status)
			if tt.message != "" {
				assert.Equal(t, tt.message, providerErr.Message)
			}
		})
	}
}

func TestFetch_CircuitOpens(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, func(cfg *Config) { cfg.BreakerMaxFailures = 2 })

	for i := 0; i < 2; i++ {
		_, err := client.Fetch(context.Background(), sampleParams())
		require.Error(t, err)
	}

	_, err := client.Fetch(context.Background(), sampleParams())
	require.Error(t, err)

	var providerErr *generation.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusServiceUnavailable, providerErr.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits), "open circuit must not reach upstream")
}

func TestFetch_ClientErrorsDoNotTrip(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, func(cfg *Config) { cfg.BreakerMaxFailures = 1 })

	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background(), sampleParams())
		require.Error(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
}

func TestFetch_ContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, sampleParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled), "got %v", err)
}

func TestHealth(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			assert.Equal(t, "64", r.URL.Query().Get("width"))
			assert.Equal(t, "64", r.URL.Query().Get("height"))
			w.Header().Set("Content-Type", "image/jpeg")
		}, nil)

		status := client.Health(context.Background())
		assert.True(t, status.Available)
		assert.Equal(t, http.StatusOK, status.Status)
	})

	t.Run("upstream down", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, nil)

		status := client.Health(context.Background())
		assert.False(t, status.Available)
		assert.Equal(t, http.StatusServiceUnavailable, status.Status)
	})
}

func TestCountsAsSuccess(t *testing.T) {
	assert.True(t, countsAsSuccess(nil))
	assert.True(t, countsAsSuccess(context.Canceled))
	assert.True(t, countsAsSuccess(&generation.ProviderError{Status: http.StatusBadRequest}))
	assert.False(t, countsAsSuccess(&generation.ProviderError{Status: http.StatusTooManyRequests}))
	assert.False(t, countsAsSuccess(&generation.ProviderError{Status: http.StatusBadGateway}))
	assert.False(t, countsAsSuccess(&generation.ProviderError{Message: "unexpected content type"}))
	assert.False(t, countsAsSuccess(errors.New("dial tcp: refused")))
}
