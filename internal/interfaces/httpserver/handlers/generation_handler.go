package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/infrastructure/metrics"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/requests"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/responses"
	"github.com/kinai9661/AIPro/internal/utils/platformerrors"
)

const (
	outcomeSuccess  = "success"
	outcomeCacheHit = "cache_hit"
)

// GenerationHandler serves image generation.
type GenerationHandler struct {
	service *generation.Service
	log     zerolog.Logger
}

func NewGenerationHandler(service *generation.Service, log zerolog.Logger) *GenerationHandler {
	return &GenerationHandler{
		service: service,
		log:     log.With().Str("component", "generation-handler").Logger(),
	}
}

// Generate godoc
// @Summary      Generate images
// @Description  Runs the generation pipeline and returns images as data URIs.
// @Description  With n=1 and either `Accept: image/*` or `?format=image` the raw image bytes are returned instead,
// @Description  with X-Seed, X-Model, X-Generation-Time, X-Cache and X-Cost headers.
// @Tags         generation
// @Accept       json
// @Produce      json
// @Produce      png
// @Param        request  body      requests.GenerateRequest  true  "Generation request"
// @Param        format   query     string                    false "Set to image for a raw image response"
// @Success      200      {object}  responses.GenerateResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      429      {object}  responses.ErrorResponse
// @Failure      502      {object}  responses.ErrorResponse
// @Failure      503      {object}  responses.ErrorResponse
// @Router       /api/generate [post]
// @Router       /v1/images/generations [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	body := requests.NewGenerateRequest()
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.RecordGeneration(body.Model, string(platformerrors.ErrorTypeValidation), 0, 0)
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body: "+err.Error(), "generate-invalid-body")
		return
	}

	req := body.ToDomain()
	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		outcome := string(platformerrors.ErrorTypeInternal)
		if perr := platformerrors.GetPlatformError(err); perr != nil {
			outcome = string(perr.Type)
		}
		metrics.RecordGeneration(string(req.Model), outcome, 0, 0)
		responses.HandleError(c, err, "image generation failed")
		return
	}

	outcome := outcomeSuccess
	if resp.Metadata.CacheHit {
		outcome = outcomeCacheHit
	}
	metrics.RecordGeneration(string(req.Model), outcome, len(resp.Results), resp.Metadata.Cost)

	if wantsRawImage(c) && len(resp.Results) == 1 {
		writeRawImage(c, resp)
		return
	}
	c.JSON(http.StatusOK, responses.NewGenerateResponse(resp))
}

func wantsRawImage(c *gin.Context) bool {
	if strings.EqualFold(c.Query("format"), "image") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(c.GetHeader("Accept")), "image/")
}

func writeRawImage(c *gin.Context, resp *generation.GenerationResponse) {
	result := resp.Results[0]
	cache := "MISS"
	if resp.Metadata.CacheHit {
		cache = "HIT"
	}
	c.Header("X-Seed", strconv.FormatInt(result.Seed, 10))
	c.Header("X-Model", string(result.Model))
	c.Header("X-Generation-Time", strconv.FormatInt(result.GenerationTime.Milliseconds(), 10))
	c.Header("X-Cache", cache)
	c.Header("X-Cost", strconv.FormatFloat(resp.Metadata.Cost, 'f', -1, 64))
	c.Header("X-Generation-Id", resp.Metadata.GenerationID)
	c.Data(http.StatusOK, result.MimeType, result.Image)
}
