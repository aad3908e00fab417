package scraper

// Section - одна из двух отслеживаемых рубрик страницы.
type Section string

const (
	SectionNews      Section = "news"
	SectionEditorial Section = "editorial"
)

// DisplayName returns the category name used in notifications.
func (s Section) DisplayName() string {
	switch s {
	case SectionNews:
		return "Daily Current Affairs"
	case SectionEditorial:
		return "Important Editorial"
	default:
		return string(s)
	}
}

// LinkItem - ссылка из списка на странице. Не сохраняется, собирается заново при каждом запуске.
type LinkItem struct {
	Title string
	URL   string
}

// Selectors описывает структурную навигацию по странице
type Selectors struct {
	NewsContainer    string `yaml:"news_container"`
	EditorialHeading string `yaml:"editorial_heading"`
	BoxHide          string `yaml:"box_hide"`
	List             string `yaml:"list"`
	Item             string `yaml:"item"`
	Anchor           string `yaml:"anchor"`
	NewsOfTheDay     string `yaml:"news_of_the_day"`
}
