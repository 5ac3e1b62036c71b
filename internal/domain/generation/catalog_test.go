package generation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_Models(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, []Model{ModelZImage, ModelFlux, ModelTurbo, ModelKontext}, c.ModelIDs())

	turbo, ok := c.Model(ModelTurbo)
	require.True(t, ok)
	assert.Equal(t, "flux-realism", turbo.ProviderName)
	assert.Equal(t, 8, turbo.DefaultSteps)

	kontext, ok := c.Model(ModelKontext)
	require.True(t, ok)
	assert.True(t, kontext.SupportsReference)
	assert.Equal(t, 0.04, kontext.CostMultiplier)

	_, ok = c.Model("dalle")
	assert.False(t, ok)
}

func TestNewCatalog_Styles(t *testing.T) {
	c := NewCatalog()

	styles := c.Styles()
	require.NotEmpty(t, styles)
	assert.Equal(t, StyleNone, styles[0])
	assert.True(t, c.HasStyle("anime"))
	assert.True(t, c.HasStyle("ukiyo-e"))
	assert.False(t, c.HasStyle("unknown"))

	assert.Equal(t, 5, c.Style("anime").StepsDelta)
	assert.Equal(t, defaultNegative, c.Style("manga").Negative)
	assert.Equal(t, c.Style(StyleNone), c.Style("unknown"))

	assert.True(t, c.HasQuality(QualityUltra))
	assert.False(t, c.HasQuality("max"))
}

func TestLoadStyleOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
styles:
  Neon-Noir:
    positive: "neon noir, rain soaked streets"
    negative: "daylight"
    guidance_delta: 1.0
    steps_delta: 4
  anime:
    positive: "anime, cel shading"
  none:
    positive: "ignored"
`), 0o600))

	c := NewCatalog()
	n, err := c.LoadStyleOverlay(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	neon := c.Style("neon-noir")
	assert.Equal(t, "neon noir, rain soaked streets", neon.Positive)
	assert.Equal(t, "daylight", neon.Negative)
	assert.Equal(t, 1.0, neon.GuidanceDelta)
	assert.Equal(t, 4, neon.StepsDelta)

	assert.Equal(t, "anime, cel shading", c.Style("anime").Positive)
	assert.Zero(t, c.Style("anime").StepsDelta)
	assert.Empty(t, c.Style(StyleNone).Positive)
}

func TestLoadStyleOverlay_Errors(t *testing.T) {
	c := NewCatalog()

	_, err := c.LoadStyleOverlay(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read style catalog")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles: [unclosed"), 0o600))
	_, err = c.LoadStyleOverlay(path)
	assert.ErrorContains(t, err, "parse style catalog")
}
