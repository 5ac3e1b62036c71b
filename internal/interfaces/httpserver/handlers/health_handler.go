package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/infrastructure/cache"
	"github.com/kinai9661/AIPro/internal/infrastructure/provider"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/responses"
)

// Version is reported by the health endpoint.
const Version = "2.0.0"

const healthProbeTimeout = 10 * time.Second

// ProviderProbe checks upstream availability.
type ProviderProbe interface {
	Health(ctx context.Context) provider.HealthStatus
}

// HealthHandler reports service and provider health.
type HealthHandler struct {
	service   *generation.Service
	probe     ProviderProbe
	cache     cache.Store
	startedAt time.Time
	now       func() time.Time
}

func NewHealthHandler(service *generation.Service, probe ProviderProbe, store cache.Store) *HealthHandler {
	return &HealthHandler{
		service:   service,
		probe:     probe,
		cache:     store,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Health godoc
// @Summary      Service health
// @Description  Probes the image provider. Returns 503 with status "degraded" when it is unreachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  responses.HealthResponse
// @Failure      503  {object}  responses.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	probe := h.probe.Health(ctx)

	models := h.service.Catalog().ModelIDs()
	body := responses.HealthResponse{
		Status:             "ok",
		Version:            Version,
		Models:             make([]string, 0, len(models)),
		Uptime:             responses.FormatUptime(h.now().Sub(h.startedAt)),
		CacheEnabled:       h.cache != nil,
		TranslationEnabled: h.service.TranslationEnabled(),
		ProviderStatus:     probe.Status,
		ProviderLatencyMs:  probe.Latency.Milliseconds(),
	}
	for _, m := range models {
		body.Models = append(body.Models, string(m))
	}
	if h.cache != nil {
		body.CacheBackend = h.cache.Name()
	}

	status := http.StatusOK
	if !probe.Available {
		body.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.Header("Cache-Control", "no-cache")
	c.JSON(status, body)
}
