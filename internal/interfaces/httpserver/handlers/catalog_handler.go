package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/requests"
	"github.com/kinai9661/AIPro/internal/interfaces/httpserver/responses"
)

// CatalogHandler exposes the static model and style tables.
type CatalogHandler struct {
	catalog *generation.Catalog
	schema  *jsonschema.Schema
}

func NewCatalogHandler(catalog *generation.Catalog) *CatalogHandler {
	reflector := &jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(&requests.GenerateRequest{})
	schema.Title = "Image generation request"
	schema.Description = "Body of POST /api/generate"

	return &CatalogHandler{catalog: catalog, schema: schema}
}

// Models godoc
// @Summary      List models
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  generation.ModelConfig
// @Router       /api/models [get]
func (h *CatalogHandler) Models(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, h.catalog.Models())
}

// Styles godoc
// @Summary      List style presets
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  responses.StyleResponse
// @Router       /api/styles [get]
func (h *CatalogHandler) Styles(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, responses.NewStyleResponses(h.catalog))
}

// Schema godoc
// @Summary      JSON schema of the generation request
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/schema [get]
func (h *CatalogHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, h.schema)
}
