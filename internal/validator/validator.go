// Package validator confirms that artwork URLs point at displayable images.
package validator

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/mmcdole/parallax/internal/domain"
)

const defaultUserAgent = "parallax/0.1"

// HTTPValidator checks an image URL with a GET and decodes its header.
// It enforces no timeout of its own; callers bound it with ctx.
type HTTPValidator struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

var _ domain.Validator = (*HTTPValidator)(nil)

// New creates a validator. A nil client uses a client without a timeout.
func New(httpClient *http.Client, userAgent string, logger *slog.Logger) *HTTPValidator {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPValidator{
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Validate returns nil when url serves a decodable image.
// Failures wrap domain.ErrValidationFailed.
func (v *HTTPValidator) Validate(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("%w: empty url", domain.ErrValidationFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		v.logger.Debug("image check failed", "url", url, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		v.logger.Debug("image check bad status", "url", url, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", domain.ErrValidationFailed, resp.StatusCode)
	}

	cfg, format, err := image.DecodeConfig(resp.Body)
	if err != nil {
		v.logger.Debug("image decode failed", "url", url, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: empty image", domain.ErrValidationFailed)
	}

	v.logger.Debug("image validated", "url", url, "format", format, "width", cfg.Width, "height", cfg.Height)
	return nil
}
