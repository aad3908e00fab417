package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"drishti-notifier/internal/config"
	"drishti-notifier/internal/observability"
)

// PageFetcher - всё, что умеет вернуть HTML страницы по адресу.
type PageFetcher interface {
	Fetch(ctx context.Context, urlStr string) (*FetchResponse, error)
}

type FetchResponse struct {
	StatusCode int
	Body       []byte
	URL        string
	Headers    http.Header
}

// FetchError means the document could not be obtained: transport failure,
// timeout or a non-2xx status. StatusCode is 0 when no response arrived.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *observability.Logger
}

func NewFetcher(cfg *config.Config, logger *observability.Logger) *Fetcher {
	client := &http.Client{
		Timeout: cfg.GetFetchTimeout(),
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Fetcher{
		client:    client,
		userAgent: cfg.HTTP.UserAgent,
		logger:    logger,
	}
}

// NewPageFetcher выбирает реализацию: headless браузер, если rod.enabled, иначе обычный HTTP.
func NewPageFetcher(cfg *config.Config, logger *observability.Logger) PageFetcher {
	if cfg.Rod.Enabled {
		return NewBrowserFetcher(cfg, logger)
	}
	return NewFetcher(cfg, logger)
}

// Fetch делает ровно одну попытку, без повторов.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("invalid request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	f.logger.Info("Fetching page", "url", urlStr)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("Failed to close response body", "url", urlStr, "error", err.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// тело не нужно, но дочитываем немного, чтобы соединение переиспользовалось
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &FetchError{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %s", resp.Status),
		}
	}

	reader := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &FetchError{URL: urlStr, StatusCode: 0, Err: fmt.Errorf("gzip: %w", err)}
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("read body: %w", err)}
	}

	f.logger.Debug("Response received",
		"url", urlStr,
		"status", resp.StatusCode,
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"content_type", resp.Header.Get("Content-Type"),
		"bytes", len(body),
	)

	return &FetchResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        resp.Request.URL.String(),
		Headers:    resp.Header,
	}, nil
}
