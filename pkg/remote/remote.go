// Package remote fetches web pages and reduces them to plain text for
// inclusion in an assembled document.
package remote

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/k3a/html2text"
	"go.uber.org/zap"

	"promptdeck/pkg/logging"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Source is one user-submitted URL. Content starts nil and is filled by a
// background fetch; a failed fetch leaves it nil until a manual re-fetch.
type Source struct {
	URL     string
	Content *string
	Include bool
}

// Fetcher performs single blocking GETs. There is no protocol beyond that;
// cancellation other than the client timeout is out of scope.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher returns a fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logging.Or(logger),
	}
}

// Fetch GETs url and returns the extracted text. HTML responses are reduced
// to plain text; anything else is returned as-is. Non-2xx statuses are
// errors.
func (f *Fetcher) Fetch(url string) (string, error) {
	start := time.Now()
	resp, err := f.client.Get(url)
	if err != nil {
		f.logger.Warn("Remote fetch failed", zap.String("url", url), zap.Error(err))
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("Remote fetch returned non-success status",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	text := string(body)
	if isHTML(resp.Header.Get("Content-Type"), text) {
		text = html2text.HTML2Text(text)
	}

	f.logger.Debug("Remote fetch completed",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

func isHTML(contentType, body string) bool {
	if strings.Contains(contentType, "html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
