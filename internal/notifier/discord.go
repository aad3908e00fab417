// Package notifier delivers new-link notifications to a Discord webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"drishti-notifier/internal/config"
	"drishti-notifier/internal/normalize"
	"drishti-notifier/internal/observability"
	"drishti-notifier/internal/scraper"
)

const (
	// maxDescriptionChars - лимит Discord на description в embed
	maxDescriptionChars = 4096
	titlePrefixChars    = 50
	digestTitle         = "News of the Day"
)

type WebhookPayload struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	Embeds    []Embed `json:"embeds"`
}

type Embed struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Color       int         `json:"color"`
	Timestamp   string      `json:"timestamp"`
	Footer      EmbedFooter `json:"footer"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type Discord struct {
	client  *http.Client
	webhook string
	cfg     config.DiscordConfig
	logger  *observability.Logger
	now     func() time.Time
}

func NewDiscord(cfg *config.Config, logger *observability.Logger) *Discord {
	return &Discord{
		client:  &http.Client{Timeout: cfg.GetNotifyTimeout()},
		webhook: cfg.Discord.WebhookURL,
		cfg:     cfg.Discord,
		logger:  logger,
		now:     time.Now,
	}
}

// Notify отправляет одно сообщение о новой ссылке.
// Ошибки не возвращаются наружу: они логируются, результат - false.
func (d *Discord) Notify(ctx context.Context, title, url string, section scraper.Section) bool {
	category := section.DisplayName()
	title = normalize.CleanTitle(title)

	if d.webhook == "" {
		d.logger.Error("Discord webhook is not configured, notification skipped",
			"category", category,
			"title", normalize.Prefix(title, titlePrefixChars),
			"url", url,
		)
		return false
	}

	payload := d.payload(Embed{
		Title: title,
		Description: fmt.Sprintf("New update available in %s section!\n[Click to Read full article](%s)",
			category, url),
		URL:   url,
		Color: d.color(section),
	})

	if err := d.post(ctx, payload); err != nil {
		d.logger.Error("Failed to send notification",
			"category", category,
			"title", normalize.Prefix(title, titlePrefixChars),
			"url", url,
			"error", err.Error(),
		)
		return false
	}

	d.logger.Info("Notification sent",
		"category", category,
		"title", normalize.Prefix(title, titlePrefixChars),
		"url", url,
	)
	return true
}

// NotifyDigest отправляет одно сообщение со всеми статьями выпуска "News of the Day".
func (d *Discord) NotifyDigest(ctx context.Context, pageTitle string, items []scraper.LinkItem, pageURL string) bool {
	if len(items) == 0 {
		return false
	}
	if d.webhook == "" {
		d.logger.Error("Discord webhook is not configured, digest skipped", "url", pageURL)
		return false
	}

	payload := d.payload(Embed{
		Title:       digestTitle,
		Description: digestDescription(pageTitle, items, pageURL),
		URL:         pageURL,
		Color:       d.cfg.NewsColor,
	})

	if err := d.post(ctx, payload); err != nil {
		d.logger.Error("Failed to send news of the day",
			"title", normalize.Prefix(pageTitle, titlePrefixChars),
			"url", pageURL,
			"articles", len(items),
			"error", err.Error(),
		)
		return false
	}

	d.logger.Info("News of the day sent", "url", pageURL, "articles", len(items))
	return true
}

func (d *Discord) payload(embed Embed) *WebhookPayload {
	embed.Timestamp = d.now().UTC().Format(time.RFC3339)
	embed.Footer = EmbedFooter{Text: d.cfg.FooterText}

	return &WebhookPayload{
		Username:  d.cfg.Username,
		AvatarURL: d.cfg.AvatarURL,
		Embeds:    []Embed{embed},
	}
}

func (d *Discord) color(section scraper.Section) int {
	if section == scraper.SectionNews {
		return d.cfg.NewsColor
	}
	return d.cfg.EditorialColor
}

func (d *Discord) post(ctx context.Context, payload *WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			d.logger.Warn("Failed to close webhook response body", "error", err.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return nil
}

func digestDescription(pageTitle string, items []scraper.LinkItem, pageURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%d articles published on %s:**\n\n", len(items), pageTitle)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, item.Title, item.URL)
	}

	footer := fmt.Sprintf("\n[View full page](%s)", pageURL)
	list := normalize.TruncateLines(b.String(), maxDescriptionChars-len([]rune(footer)), "…\n")

	return list + footer
}
