package scraper

import (
	"drishti-notifier/internal/observability"
)

type Scraper struct {
	selectors *Selectors
	logger    *observability.Logger
}

func NewScraper(selectors *Selectors, logger *observability.Logger) *Scraper {
	return &Scraper{
		selectors: selectors,
		logger:    logger,
	}
}

// ParseNewsSection: news container → box-hide → ul → li → a[href]
func (s *Scraper) ParseNewsSection(doc *Document) []LinkItem {
	label := string(SectionNews)

	container, ok := doc.Root().FindOne(s.selectors.NewsContainer)
	if !ok {
		s.warnMissing(label, "container", s.selectors.NewsContainer)
		return nil
	}

	items := s.extractBoxList(label, container)
	s.logger.Info("News links found", "count", len(items))
	return items
}

// ParseEditorialSection ищет блок редакционных статей от его заголовка.
// Поиск box-hide идёт только внутри родителя заголовка, иначе первым найдётся блок новостей.
func (s *Scraper) ParseEditorialSection(doc *Document) []LinkItem {
	label := string(SectionEditorial)

	heading, ok := doc.Root().FindOne(s.selectors.EditorialHeading)
	if !ok {
		s.warnMissing(label, "heading", s.selectors.EditorialHeading)
		return nil
	}

	parent, ok := heading.Parent()
	if !ok {
		s.warnMissing(label, "heading parent", s.selectors.EditorialHeading)
		return nil
	}

	items := s.extractBoxList(label, parent)
	s.logger.Info("Editorial links found", "count", len(items))
	return items
}

// ParseNewsOfTheDay парсит страницу выпуска: div.category.news → ul → li → a[href].
// Ссылки возвращаются как есть, без разрешения относительных адресов.
func (s *Scraper) ParseNewsOfTheDay(doc *Document) []LinkItem {
	label := "news_of_the_day"

	category, ok := doc.Root().FindOne(s.selectors.NewsOfTheDay)
	if !ok {
		s.warnMissing(label, "category", s.selectors.NewsOfTheDay)
		return nil
	}

	list, ok := category.FindOne(s.selectors.List)
	if !ok {
		s.warnMissing(label, "list", s.selectors.List)
		return nil
	}

	items := s.extractItems(label, list)
	s.logger.Info("News of the day articles found", "count", len(items))
	return items
}

func (s *Scraper) extractBoxList(label string, scope Node) []LinkItem {
	box, ok := scope.FindOne(s.selectors.BoxHide)
	if !ok {
		s.warnMissing(label, "box", s.selectors.BoxHide)
		return nil
	}

	list, ok := box.FindOne(s.selectors.List)
	if !ok {
		s.warnMissing(label, "list", s.selectors.List)
		return nil
	}

	return s.extractItems(label, list)
}

func (s *Scraper) extractItems(label string, list Node) []LinkItem {
	var items []LinkItem

	list.Each(s.selectors.Item, func(li Node) {
		anchor, ok := li.FindOne(s.selectors.Anchor)
		if !ok {
			return
		}

		href := anchor.Attr("href")
		if href == "" {
			return
		}

		title := anchor.Text()
		if title == "" {
			s.logger.Debug("Skipping link without text", "section", label, "url", href)
			return
		}

		items = append(items, LinkItem{Title: title, URL: href})
	})

	return items
}

func (s *Scraper) warnMissing(label, step, selector string) {
	s.logger.Warn("Section element not found",
		"section", label,
		"step", step,
		"selector", selector,
	)
}
