package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kinai9661/AIPro/internal/utils/platformerrors"
)

// ProviderError is returned by provider clients when the upstream answers with
// a non-success status or a payload that is not an image.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("provider error: %s", e.Message)
	}
	return fmt.Sprintf("provider error: %d - %s", e.Status, e.Message)
}

// IsProviderError reports whether err wraps a ProviderError.
func IsProviderError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}

func newValidationError(ctx context.Context, message, code string, fields map[string]any) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypeValidation, message, nil, code, fields)
}

// wrapProviderError keeps upstream status/message on the platform error.
func wrapProviderError(ctx context.Context, index int, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnavailable, "image generation cancelled", err,
			"generation-cancelled", map[string]any{"image_index": index})
	}

	fields := map[string]any{"image_index": index}
	message := "image provider request failed"
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		fields["provider_status"] = providerErr.Status
		message = providerErr.Error()
		if providerErr.Status == http.StatusTooManyRequests {
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeRateLimited, message, err, "provider-rate-limited", fields)
		}
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain,
		platformerrors.ErrorTypeExternal, message, err, "provider-error", fields)
}
