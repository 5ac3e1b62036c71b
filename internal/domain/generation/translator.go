package generation

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

// TranslationCapability rewrites text from one language to another. It may
// be absent (nil) and it may fail; neither is fatal to a generation.
type TranslationCapability interface {
	Translate(ctx context.Context, text string, source, target language.Tag) (string, error)
}

// Translator normalizes prompts written in Chinese to English before they
// reach the provider. Translate never fails: on any problem the original
// prompt is returned.
type Translator struct {
	capability TranslationCapability
	source     language.Tag
	target     language.Tag
	log        zerolog.Logger
}

// NewTranslator wraps capability, which may be nil.
func NewTranslator(capability TranslationCapability, log zerolog.Logger) *Translator {
	return &Translator{
		capability: capability,
		source:     language.Chinese,
		target:     language.English,
		log:        log.With().Str("component", "prompt-translator").Logger(),
	}
}

// Enabled reports whether a translation backend is wired.
func (t *Translator) Enabled() bool {
	return t != nil && t.capability != nil
}

// Translate returns prompt in the provider's language, or prompt unchanged.
func (t *Translator) Translate(ctx context.Context, prompt string) string {
	if t == nil || !NeedsTranslation(prompt) {
		return prompt
	}
	if !t.Enabled() {
		t.log.Warn().Msg("translation capability not configured, using original prompt")
		return prompt
	}

	translated, err := t.capability.Translate(ctx, prompt, t.source, t.target)
	if err != nil {
		t.log.Warn().Err(err).Msg("prompt translation failed, using original prompt")
		return prompt
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		t.log.Warn().Msg("prompt translation returned empty text, using original prompt")
		return prompt
	}

	t.log.Debug().Int("original_len", len(prompt)).Int("translated_len", len(translated)).Msg("prompt translated")
	return translated
}

// NeedsTranslation reports whether s contains Han ideographs.
func NeedsTranslation(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
