package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(GenerationsTotal.WithLabelValues("flux", "success"))
	imagesBefore := testutil.ToFloat64(ImagesTotal.WithLabelValues("flux"))

	RecordGeneration("Flux", "success", 3, 0.00036)

	assert.Equal(t, before+1, testutil.ToFloat64(GenerationsTotal.WithLabelValues("flux", "success")))
	assert.Equal(t, imagesBefore+3, testutil.ToFloat64(ImagesTotal.WithLabelValues("flux")))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("memory", "hit"))
	misses := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("memory", "miss"))

	RecordCacheLookup("memory", true)
	RecordCacheLookup("memory", false)
	RecordCacheLookup("memory", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("memory", "hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("memory", "miss")))
}

func TestSetProviderHealth(t *testing.T) {
	SetProviderHealth(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(ProviderHealth))
	SetProviderHealth(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(ProviderHealth))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "unknown", normalizeLabel("  "))
	assert.Equal(t, "kontext", normalizeLabel(" Kontext "))
}
