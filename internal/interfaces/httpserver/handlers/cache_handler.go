package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kinai9661/AIPro/internal/infrastructure/cache"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/responses"
	"github.com/kinai9661/AIPro/internal/utils/platformerrors"
)

// CacheHandler exposes cache administration.
type CacheHandler struct {
	cache cache.Store
	log   zerolog.Logger
}

func NewCacheHandler(store cache.Store, log zerolog.Logger) *CacheHandler {
	return &CacheHandler{
		cache: store,
		log:   log.With().Str("component", "cache-handler").Logger(),
	}
}

// Clear godoc
// @Summary      Clear the generation cache
// @Tags         cache
// @Produce      json
// @Success      200  {object}  responses.CacheClearResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /api/cache/clear [post]
func (h *CacheHandler) Clear(c *gin.Context) {
	if h.cache == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Cache not enabled", "cache-disabled")
		return
	}

	removed, err := h.cache.Clear(c.Request.Context())
	if err != nil {
		perr := platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal, "Failed to clear cache", err, "cache-clear-failed")
		platformerrors.LogError(h.log, perr)
		responses.HandleError(c, perr, "Failed to clear cache")
		return
	}

	h.log.Info().Str("backend", h.cache.Name()).Int("removed", removed).Msg("cache cleared")
	c.JSON(http.StatusOK, responses.CacheClearResponse{
		Success: true,
		Backend: h.cache.Name(),
		Removed: removed,
		Message: "Cache cleared",
	})
}
