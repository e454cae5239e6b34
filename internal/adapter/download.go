package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mmcdole/parallax/internal/domain"
)

// Downloader saves artwork images into a local directory
type Downloader struct {
	dir        string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewDownloader creates a Downloader writing into dir
func NewDownloader(dir string, httpClient *http.Client, userAgent string, logger *slog.Logger) *Downloader {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		dir:        dir,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Download fetches art into "<dir>/<title> - <artist>.jpg" and returns the
// written path. The file appears only once the body is fully written.
func (d *Downloader) Download(ctx context.Context, art domain.Artwork) (string, error) {
	if art.IsZero() {
		return "", fmt.Errorf("download: %w", domain.ErrNoArtwork)
	}

	dir, err := ExpandHome(d.dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, art.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", art.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download %s: unexpected status code: %d", art.URL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(dir, ".parallax-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, copyErr := io.Copy(tmp, resp.Body)
	if err := errors.Join(copyErr, tmp.Close()); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	path := filepath.Join(dir, art.DownloadName())
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	d.logger.Info("downloaded artwork", "title", art.Title, "path", path)
	return path, nil
}
