package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"drishti-notifier/internal/config"
	"drishti-notifier/internal/observability"
)

// BrowserFetcher рендерит страницу в headless Chromium через rod.
// Нужен, если сайт начнёт отдавать списки только после выполнения JS.
type BrowserFetcher struct {
	chromePath  string
	userAgent   string
	pageTimeout time.Duration
	logger      *observability.Logger
}

func NewBrowserFetcher(cfg *config.Config, logger *observability.Logger) *BrowserFetcher {
	return &BrowserFetcher{
		chromePath:  cfg.Rod.ChromePath,
		userAgent:   cfg.HTTP.UserAgent,
		pageTimeout: cfg.GetRodPageTimeout(),
		logger:      logger,
	}
}

// Fetch запускает браузер на один запрос и закрывает его после получения HTML.
func (b *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	l := launcher.New().Context(ctx).Headless(true)
	if b.chromePath != "" {
		l = l.Bin(b.chromePath)
	}

	b.logger.Info("Fetching page with headless browser", "url", urlStr)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("launch browser: %w", err)}
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("connect browser: %w", err)}
	}
	defer func() {
		if err := browser.Close(); err != nil {
			b.logger.Warn("Failed to close browser", "error", err.Error())
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("open page: %w", err)}
	}
	page = page.Timeout(b.pageTimeout)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}); err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("set user agent: %w", err)}
	}

	var status int
	waitDocument := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument {
			status = e.Response.Status
			return true
		}
		return false
	})

	if err := page.Navigate(urlStr); err != nil {
		return nil, &FetchError{URL: urlStr, Err: fmt.Errorf("navigate: %w", err)}
	}
	waitDocument()

	if status < 200 || status > 299 {
		return nil, &FetchError{URL: urlStr, StatusCode: status, Err: fmt.Errorf("document status %d", status)}
	}

	if err := page.WaitLoad(); err != nil {
		return nil, &FetchError{URL: urlStr, StatusCode: status, Err: fmt.Errorf("wait load: %w", err)}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &FetchError{URL: urlStr, StatusCode: status, Err: fmt.Errorf("read html: %w", err)}
	}

	return &FetchResponse{
		StatusCode: status,
		Body:       []byte(html),
		URL:        urlStr,
	}, nil
}
