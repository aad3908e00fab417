package normalize

import (
	"strings"
	"unicode/utf8"
)

// CleanTitle убирает многоточия, которыми сайт обрезает длинные заголовки, и пробелы по краям
func CleanTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, "...", ""))
}

// ResolveURL делает ссылку абсолютной относительно базового адреса сайта.
// Ссылки, начинающиеся с http, возвращаются без изменений.
func ResolveURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}

// Prefix returns at most n runes of s; used for log lines.
func Prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// TruncateLines обрезает текст до maxChars символов по границе строки и добавляет suffix.
// Если даже первая строка не помещается, она режется посимвольно.
func TruncateLines(text string, maxChars int, suffix string) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	budget := maxChars - utf8.RuneCountInString(suffix)
	if budget <= 0 {
		return Prefix(suffix, maxChars)
	}

	var b strings.Builder
	used := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if used+n > budget {
			if used == 0 {
				b.WriteString(Prefix(line, budget))
			}
			break
		}
		b.WriteString(line)
		used += n
	}

	return b.String() + suffix
}
