package app

import (
	"context"
	"fmt"

	"drishti-notifier/internal/config"
	"drishti-notifier/internal/fetcher"
	"drishti-notifier/internal/normalize"
	"drishti-notifier/internal/observability"
	"drishti-notifier/internal/scraper"
	"drishti-notifier/internal/storage"
)

// Notifier доставляет уведомления. false означает, что ссылку нужно повторить в следующий запуск.
type Notifier interface {
	Notify(ctx context.Context, title, url string, section scraper.Section) bool
	NotifyDigest(ctx context.Context, pageTitle string, items []scraper.LinkItem, pageURL string) bool
}

type Orchestrator struct {
	cfg      *config.Config
	logger   *observability.Logger
	fetcher  fetcher.PageFetcher
	scraper  *scraper.Scraper
	store    storage.Repository
	notifier Notifier
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	f fetcher.PageFetcher,
	s *scraper.Scraper,
	store storage.Repository,
	n Notifier,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger,
		fetcher:  f,
		scraper:  s,
		store:    store,
		notifier: n,
	}
}

type SectionStats struct {
	Found       int
	Notified    int
	AlreadySeen int
	Failed      int
}

type RunStats struct {
	News         SectionStats
	Editorials   SectionStats
	DigestSent   bool
	HistorySaved bool
}

// Changed reports whether anything was delivered during the run.
func (s *RunStats) Changed() bool {
	return s.News.Notified > 0 || s.Editorials.Notified > 0 || s.DigestSent
}

// Run выполняет один проход: fetch → parse → diff news → diff editorials → (news of the day) → save.
// Ошибка возвращается только для фатальных состояний: нет вебхука или не удалось получить страницу.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	o.logger.Info("Run started", "target_url", o.cfg.TargetURL)

	if err := o.cfg.RequireWebhook(); err != nil {
		return nil, err
	}

	resp, err := o.fetcher.Fetch(ctx, o.cfg.TargetURL)
	if err != nil {
		return nil, err
	}
	o.logger.Info("Page fetched", "url", o.cfg.TargetURL, "bytes", len(resp.Body))

	doc, err := scraper.ParseDocument(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", o.cfg.TargetURL, err)
	}

	newsLinks := o.scraper.ParseNewsSection(doc)
	editorialLinks := o.scraper.ParseEditorialSection(doc)

	history := o.store.Load()
	history.Normalize(o.cfg.MaxHistorySize)
	stats := &RunStats{}

	o.logger.Info("Processing news")
	var firstNews *scraper.LinkItem
	stats.News, firstNews = o.diffSection(ctx, scraper.SectionNews, storage.ListNews, newsLinks, history)

	o.logger.Info("Processing editorials")
	stats.Editorials, _ = o.diffSection(ctx, scraper.SectionEditorial, storage.ListEditorials, editorialLinks, history)

	if o.cfg.NewsOfTheDay.Enabled && firstNews != nil {
		stats.DigestSent = o.sendNewsOfTheDay(ctx, *firstNews, history)
	}

	if stats.Changed() {
		if err := o.store.Save(history); err != nil {
			// уведомления уже ушли; в худшем случае следующий запуск отправит их повторно
			o.logger.Error("Failed to save history",
				"path", o.cfg.HistoryFile,
				"error", err.Error(),
			)
		} else {
			stats.HistorySaved = true
		}
	} else {
		o.logger.Info("No new updates found")
	}

	o.logger.Info("Run completed",
		"news_found", stats.News.Found,
		"news_notified", stats.News.Notified,
		"news_failed", stats.News.Failed,
		"editorials_found", stats.Editorials.Found,
		"editorials_notified", stats.Editorials.Notified,
		"editorials_failed", stats.Editorials.Failed,
		"digest_sent", stats.DigestSent,
		"history_saved", stats.HistorySaved,
	)

	return stats, nil
}

// diffSection проверяет первые TopItems ссылок, начиная с самой старой из них,
// чтобы несколько новых ссылок пришли в хронологическом порядке.
// Ссылки за пределами TopItems не проверяются никогда.
// Возвращает первую успешно отправленную ссылку.
func (o *Orchestrator) diffSection(
	ctx context.Context,
	section scraper.Section,
	list storage.List,
	items []scraper.LinkItem,
	history *storage.History,
) (SectionStats, *scraper.LinkItem) {
	stats := SectionStats{Found: len(items)}
	var first *scraper.LinkItem
	logger := o.logger.With("category", section.DisplayName())

	top := items
	if len(top) > o.cfg.TopItems {
		top = top[:o.cfg.TopItems]
	}

	for i := len(top) - 1; i >= 0; i-- {
		item := top[i]

		if history.Contains(list, item.URL) {
			logger.Info("Already notified",
				"title", normalize.Prefix(item.Title, 50),
				"url", item.URL,
			)
			stats.AlreadySeen++
			continue
		}

		link := normalize.ResolveURL(o.cfg.SiteBaseURL, item.URL)
		if !o.notifier.Notify(ctx, item.Title, link, section) {
			logger.Warn("Notification not delivered, will retry next run",
				"url", item.URL,
			)
			stats.Failed++
			continue
		}

		history.Append(list, item.URL, o.cfg.MaxHistorySize)
		stats.Notified++
		if first == nil {
			notified := item
			first = &notified
		}
	}

	return stats, first
}

// sendNewsOfTheDay отправляет сводку статей со страницы выпуска, на которую ведёт новая ссылка.
// Любая ошибка здесь не фатальна.
func (o *Orchestrator) sendNewsOfTheDay(ctx context.Context, item scraper.LinkItem, history *storage.History) bool {
	if history.Contains(storage.ListNewsArticles, item.URL) {
		o.logger.Info("News of the day already sent", "title", item.Title, "url", item.URL)
		return false
	}

	pageURL := normalize.ResolveURL(o.cfg.SiteBaseURL, item.URL)

	resp, err := o.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		o.logger.Error("Failed to fetch news of the day",
			"title", item.Title,
			"url", pageURL,
			"error", err.Error(),
		)
		return false
	}

	doc, err := scraper.ParseDocument(string(resp.Body))
	if err != nil {
		o.logger.Error("Failed to parse news of the day",
			"url", pageURL,
			"error", err.Error(),
		)
		return false
	}

	articles := o.scraper.ParseNewsOfTheDay(doc)
	if len(articles) == 0 {
		o.logger.Info("No news of the day articles", "url", pageURL)
		return false
	}
	for i := range articles {
		articles[i].URL = normalize.ResolveURL(o.cfg.SiteBaseURL, articles[i].URL)
	}

	if !o.notifier.NotifyDigest(ctx, item.Title, articles, pageURL) {
		return false
	}

	history.Append(storage.ListNewsArticles, item.URL, o.cfg.MaxHistorySize)
	return true
}
