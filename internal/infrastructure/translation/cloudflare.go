package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"resty.dev/v3"

	"github.com/kinai9661/AIPro/internal/infrastructure/metrics"
	"github.com/kinai9661/AIPro/internal/utils/httpclients"
)

// DefaultModel is the Workers AI translation model.
const DefaultModel = "@cf/meta/m2m100-1.2b"

// Config configures the Workers AI client.
type Config struct {
	BaseURL   string
	AccountID string
	APIToken  string
	Model     string
	Timeout   time.Duration
}

// CloudflareTranslator calls the Workers AI REST endpoint.
type CloudflareTranslator struct {
	client    *resty.Client
	accountID string
	model     string
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Success bool `json:"success"`
	Result  struct {
		TranslatedText string `json:"translated_text"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// NewCloudflareTranslator builds the client.
func NewCloudflareTranslator(cfg Config, log zerolog.Logger) *CloudflareTranslator {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	client := httpclients.NewClient("cloudflare-ai", log).
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIToken).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &CloudflareTranslator{
		client:    client,
		accountID: cfg.AccountID,
		model:     model,
	}
}

// Translate runs the m2m100 model from source to target.
func (t *CloudflareTranslator) Translate(ctx context.Context, text string, source, target language.Tag) (string, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"account": t.accountID}).
		SetBody(translateRequest{
			Text:       text,
			SourceLang: baseCode(source),
			TargetLang: baseCode(target),
		}).
		Post("/accounts/{account}/ai/run/" + t.model)
	if err != nil {
		metrics.RecordTranslation("error")
		return "", fmt.Errorf("workers ai request: %w", err)
	}

	var out translateResponse
	if err := json.Unmarshal(resp.Bytes(), &out); err != nil && resp.StatusCode() < http.StatusBadRequest {
		metrics.RecordTranslation("error")
		return "", fmt.Errorf("decode workers ai response: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest || !out.Success {
		metrics.RecordTranslation("error")
		msg := fmt.Sprintf("status %d", resp.StatusCode())
		if len(out.Errors) > 0 {
			msg = out.Errors[0].Message
		}
		return "", fmt.Errorf("workers ai translation failed: %s", msg)
	}

	metrics.RecordTranslation("success")
	return out.Result.TranslatedText, nil
}

// Close releases idle connections.
func (t *CloudflareTranslator) Close() error {
	return t.client.Close()
}

func baseCode(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
