package config

import (
	"drishti-notifier/internal/scraper"
)

// validateSelectors проверяет, что заданы все шаги структурной навигации
func validateSelectors(s *scraper.Selectors) error {
	required := []struct {
		field string
		value string
	}{
		{"selectors.news_container", s.NewsContainer},
		{"selectors.editorial_heading", s.EditorialHeading},
		{"selectors.box_hide", s.BoxHide},
		{"selectors.list", s.List},
		{"selectors.item", s.Item},
		{"selectors.anchor", s.Anchor},
		{"selectors.news_of_the_day", s.NewsOfTheDay},
	}

	for _, r := range required {
		if r.value == "" {
			return &ConfigError{Field: r.field, Reason: "is required"}
		}
	}

	return nil
}
