package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"drishti-notifier/internal/config"
	"drishti-notifier/internal/observability"
	"drishti-notifier/internal/scraper"
)

var fixedNow = time.Date(2026, 10, 19, 6, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

func testConfig(webhook string) *config.Config {
	return &config.Config{
		HTTP: config.HttpConfig{NotifyTimeoutS: 10},
		Discord: config.DiscordConfig{
			WebhookURL:     webhook,
			Username:       "Drill Ustaad - IMA",
			AvatarURL:      "https://i.ibb.co/Q79mP6CC/ima-ustad.jpg",
			FooterText:     "Daily Updates",
			NewsColor:      3447003,
			EditorialColor: 15158332,
		},
	}
}

func newTestDiscord(t *testing.T, webhook string) (*Discord, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	d := NewDiscord(testConfig(webhook), observability.NewWithCore(core))
	d.now = func() time.Time { return fixedNow }
	return d, logs
}

// captureServer records every decoded payload and answers with status.
func captureServer(t *testing.T, status int) (*httptest.Server, *[]WebhookPayload) {
	t.Helper()
	var payloads []WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var p WebhookPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		payloads = append(payloads, p)

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &payloads
}

func TestNotifyNews(t *testing.T) {
	server, payloads := captureServer(t, http.StatusNoContent)
	d, _ := newTestDiscord(t, server.URL)

	ok := d.Notify(context.Background(), "  19 Oct, 2026...  ", "https://www.drishtiias.com/news/19-10-2026", scraper.SectionNews)

	require.True(t, ok)
	require.Len(t, *payloads, 1)
	p := (*payloads)[0]

	assert.Equal(t, "Drill Ustaad - IMA", p.Username)
	assert.Equal(t, "https://i.ibb.co/Q79mP6CC/ima-ustad.jpg", p.AvatarURL)
	require.Len(t, p.Embeds, 1)

	e := p.Embeds[0]
	assert.Equal(t, "19 Oct, 2026", e.Title)
	assert.Equal(t, "https://www.drishtiias.com/news/19-10-2026", e.URL)
	assert.Equal(t, 3447003, e.Color)
	assert.Equal(t, "2026-10-19T01:00:00Z", e.Timestamp)
	assert.Equal(t, "Daily Updates", e.Footer.Text)
	assert.Equal(t,
		"New update available in Daily Current Affairs section!\n[Click to Read full article](https://www.drishtiias.com/news/19-10-2026)",
		e.Description)
}

func TestNotifyEditorialColor(t *testing.T) {
	server, payloads := captureServer(t, http.StatusOK)
	d, _ := newTestDiscord(t, server.URL)

	require.True(t, d.Notify(context.Background(), "Federalism", "/e/1", scraper.SectionEditorial))

	e := (*payloads)[0].Embeds[0]
	assert.Equal(t, 15158332, e.Color)
	assert.Contains(t, e.Description, "Important Editorial section!")
}

func TestNotifyServerError(t *testing.T) {
	server, payloads := captureServer(t, http.StatusInternalServerError)
	d, logs := newTestDiscord(t, server.URL)

	ok := d.Notify(context.Background(), "Some title", "https://x.test/a", scraper.SectionNews)

	assert.False(t, ok)
	assert.Len(t, *payloads, 1)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	ctx := errs[0].ContextMap()
	assert.Equal(t, "Daily Current Affairs", ctx["category"])
	assert.Equal(t, "Some title", ctx["title"])
	assert.Equal(t, "https://x.test/a", ctx["url"])
	assert.Contains(t, ctx["error"], "status 500")
}

func TestNotifyTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	d, logs := newTestDiscord(t, url)

	assert.False(t, d.Notify(context.Background(), "t", "u", scraper.SectionNews))
	assert.Equal(t, 1, logs.FilterMessage("Failed to send notification").Len())
}

func TestNotifyWithoutWebhook(t *testing.T) {
	d, logs := newTestDiscord(t, "")

	assert.False(t, d.Notify(context.Background(), "t", "u", scraper.SectionEditorial))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestNotifyLogsTitlePrefix(t *testing.T) {
	server, _ := captureServer(t, http.StatusOK)
	d, logs := newTestDiscord(t, server.URL)

	long := strings.Repeat("я", 80)
	require.True(t, d.Notify(context.Background(), long, "u", scraper.SectionNews))

	sent := logs.FilterMessage("Notification sent").All()
	require.Len(t, sent, 1)
	assert.Equal(t, 50, utf8.RuneCountInString(sent[0].ContextMap()["title"].(string)))
}

func TestNotifyDigest(t *testing.T) {
	server, payloads := captureServer(t, http.StatusNoContent)
	d, _ := newTestDiscord(t, server.URL)

	items := []scraper.LinkItem{
		{Title: "Monsoon Outlook", URL: "https://www.drishtiias.com/d/19-10-2026#1"},
		{Title: "Green Hydrogen", URL: "https://www.drishtiias.com/d/19-10-2026#2"},
	}

	ok := d.NotifyDigest(context.Background(), "19 Oct, 2026", items, "https://www.drishtiias.com/d/19-10-2026")

	require.True(t, ok)
	e := (*payloads)[0].Embeds[0]
	assert.Equal(t, "News of the Day", e.Title)
	assert.Equal(t, 3447003, e.Color)
	assert.Equal(t, "https://www.drishtiias.com/d/19-10-2026", e.URL)
	assert.Equal(t,
		"**2 articles published on 19 Oct, 2026:**\n\n"+
			"1. [Monsoon Outlook](https://www.drishtiias.com/d/19-10-2026#1)\n"+
			"2. [Green Hydrogen](https://www.drishtiias.com/d/19-10-2026#2)\n"+
			"\n[View full page](https://www.drishtiias.com/d/19-10-2026)",
		e.Description)
}

func TestNotifyDigestWithoutItems(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	d, _ := newTestDiscord(t, server.URL)

	assert.False(t, d.NotifyDigest(context.Background(), "t", nil, "u"))
	assert.Equal(t, int32(0), calls.Load())
}

func TestDigestDescriptionIsCapped(t *testing.T) {
	var items []scraper.LinkItem
	for i := 0; i < 200; i++ {
		items = append(items, scraper.LinkItem{
			Title: fmt.Sprintf("Article number %d with a fairly long title", i),
			URL:   fmt.Sprintf("https://www.drishtiias.com/d/19-10-2026#%d", i),
		})
	}

	desc := digestDescription("19 Oct, 2026", items, "https://www.drishtiias.com/d/19-10-2026")

	assert.LessOrEqual(t, utf8.RuneCountInString(desc), maxDescriptionChars)
	assert.True(t, strings.HasSuffix(desc, "[View full page](https://www.drishtiias.com/d/19-10-2026)"))
	assert.Contains(t, desc, "1. [Article number 0")
	assert.NotContains(t, desc, "200. [")
}
