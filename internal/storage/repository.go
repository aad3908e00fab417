package storage

// List - имя списка в истории
type List string

const (
	ListNews         List = "news"
	ListEditorials   List = "editorials"
	ListNewsArticles List = "news_articles"
)

// History - уже отправленные ссылки по спискам. Порядок - порядок добавления, старые в начале.
// Порядок полей задаёт порядок ключей в файле.
type History struct {
	News         []string `json:"news"`
	Editorials   []string `json:"editorials"`
	NewsArticles []string `json:"news_articles"`
}

func NewHistory() *History {
	h := &History{}
	h.ensureLists()
	return h
}

// ensureLists заменяет nil на пустые списки, чтобы в файл не попадал null
func (h *History) ensureLists() {
	if h.News == nil {
		h.News = []string{}
	}
	if h.Editorials == nil {
		h.Editorials = []string{}
	}
	if h.NewsArticles == nil {
		h.NewsArticles = []string{}
	}
}

// Normalize prepares a freshly decoded History for use: nil lists become empty
// and every list keeps only its last maxSize entries. maxSize <= 0 disables the cap.
func (h *History) Normalize(maxSize int) {
	h.ensureLists()
	for _, name := range []List{ListNews, ListEditorials, ListNewsArticles} {
		l := h.list(name)
		*l = keepLast(*l, maxSize)
	}
}

// keepLast возвращает последние maxSize элементов в новом слайсе
func keepLast(l []string, maxSize int) []string {
	if maxSize <= 0 || len(l) <= maxSize {
		return l
	}
	trimmed := make([]string, maxSize)
	copy(trimmed, l[len(l)-maxSize:])
	return trimmed
}

func (h *History) list(name List) *[]string {
	switch name {
	case ListNews:
		return &h.News
	case ListEditorials:
		return &h.Editorials
	case ListNewsArticles:
		return &h.NewsArticles
	default:
		return nil
	}
}

func (h *History) Contains(name List, url string) bool {
	l := h.list(name)
	if l == nil {
		return false
	}
	for _, seen := range *l {
		if seen == url {
			return true
		}
	}
	return false
}

// Append добавляет url в конец списка и оставляет последние maxSize записей.
// Возвращает false, если url уже есть в списке (или список неизвестен).
func (h *History) Append(name List, url string, maxSize int) bool {
	l := h.list(name)
	if l == nil || h.Contains(name, url) {
		return false
	}

	*l = keepLast(append(*l, url), maxSize)
	return true
}

func (h *History) Len(name List) int {
	l := h.list(name)
	if l == nil {
		return 0
	}
	return len(*l)
}

// Repository интерфейс для хранилища истории.
// Load никогда не прерывает запуск: при ошибке возвращается пустая история.
type Repository interface {
	Load() *History
	Save(history *History) error
}
