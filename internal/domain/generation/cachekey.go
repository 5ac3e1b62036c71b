package generation

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf16"
)

// DefaultCacheKeyPrefix namespaces generation entries in a shared cache.
const DefaultCacheKeyPrefix = "flux_v2_"

// CacheKeyParams are the inputs that make a generation reproducible.
type CacheKeyParams struct {
	Prompt   string      `json:"prompt"`
	Model    Model       `json:"model"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Seed     int64       `json:"seed"`
	Style    StylePreset `json:"style"`
	Steps    int         `json:"steps"`
	Guidance float64     `json:"guidance"`
}

// DeriveKey fingerprints params. The prompt is lower-cased and trimmed first
// so casing and surrounding whitespace do not produce distinct entries. The
// seed is part of the key: a hit must reproduce the identical image.
func DeriveKey(prefix string, params CacheKeyParams) string {
	params.Prompt = strings.ToLower(strings.TrimSpace(params.Prompt))

	// Struct field order fixes the serialization order.
	payload, err := json.Marshal(params)
	if err != nil {
		// Only reachable with a NaN/Inf guidance, which Optimize never yields.
		payload = []byte(params.Prompt)
	}
	return prefix + strconv.FormatInt(abs32(rollingHash(string(payload))), 36)
}

// rollingHash is the 31-multiplier string hash over UTF-16 code units with
// 32-bit wraparound.
func rollingHash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

func abs32(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}
