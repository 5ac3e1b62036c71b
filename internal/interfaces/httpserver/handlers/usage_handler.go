package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kinai9661/AIPro/internal/domain/usage"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/responses"
	"github.com/kinai9661/AIPro/internal/utils/platformerrors"
)

const defaultUsageWindow = 24 * time.Hour

// UsageHandler reports accumulated generation usage.
type UsageHandler struct {
	service *usage.Service
	now     func() time.Time
}

func NewUsageHandler(service *usage.Service) *UsageHandler {
	return &UsageHandler{service: service, now: time.Now}
}

// Summary godoc
// @Summary      Usage summary
// @Description  Totals per model since the given RFC3339 time or duration (default 24h).
// @Tags         usage
// @Produce      json
// @Param        since  query     string  false  "RFC3339 timestamp or Go duration such as 1h"
// @Success      200    {object}  usage.Summary
// @Failure      400    {object}  responses.ErrorResponse
// @Router       /api/usage [get]
func (h *UsageHandler) Summary(c *gin.Context) {
	since, ok := h.parseSince(c.Query("since"))
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			"since must be an RFC3339 timestamp or a duration", "usage-invalid-since")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), since)
	if err != nil {
		responses.HandleError(c, err, "Failed to load usage")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *UsageHandler) parseSince(raw string) (time.Time, bool) {
	if raw == "" {
		return h.now().Add(-defaultUsageWindow), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return h.now().Add(-d), true
	}
	return time.Time{}, false
}
