package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Level controls how much of a prompt reaches the logs.
type Level string

const (
	// LevelNone replaces the whole prompt.
	LevelNone Level = "none"
	// LevelHashed masks contact details and links with salted hashes.
	LevelHashed Level = "hashed"
	// LevelFull logs prompts untouched.
	LevelFull Level = "full"
)

const (
	redacted         = "[REDACTED]"
	defaultMaxLength = 200
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s,]+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s.-]{7,}\d`)
	ipv4Pattern  = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// PromptSanitizer prepares prompts for log lines.
type PromptSanitizer struct {
	level     Level
	salt      string
	maxLength int
}

// NewPromptSanitizer parses level; unknown values fall back to hashed.
func NewPromptSanitizer(level, salt string) *PromptSanitizer {
	l := Level(strings.ToLower(strings.TrimSpace(level)))
	switch l {
	case LevelNone, LevelHashed, LevelFull:
	default:
		l = LevelHashed
	}
	return &PromptSanitizer{level: l, salt: salt, maxLength: defaultMaxLength}
}

// Level reports the effective level.
func (s *PromptSanitizer) Level() Level {
	return s.level
}

// SanitizePrompt applies the configured level and truncates long prompts.
func (s *PromptSanitizer) SanitizePrompt(input string) string {
	switch s.level {
	case LevelNone:
		return redacted
	case LevelFull:
		return s.truncate(input)
	}

	out := emailPattern.ReplaceAllStringFunc(input, func(m string) string { return "[EMAIL:" + s.hash(m) + "]" })
	out = urlPattern.ReplaceAllStringFunc(out, func(m string) string { return "[URL:" + s.hash(m) + "]" })
	out = ipv4Pattern.ReplaceAllStringFunc(out, func(m string) string { return "[IP:" + s.hash(m) + "]" })
	out = phonePattern.ReplaceAllStringFunc(out, func(m string) string { return "[PHONE:" + s.hash(m) + "]" })
	return s.truncate(out)
}

func (s *PromptSanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

func (s *PromptSanitizer) truncate(v string) string {
	if utf8.RuneCountInString(v) <= s.maxLength {
		return v
	}
	runes := []rune(v)
	return string(runes[:s.maxLength]) + "…"
}
