package models

// PageType is the coarse role of a page inferred from its URL and content
type PageType string

const (
	PageTypeHome     PageType = "home"
	PageTypeBlog     PageType = "blog"
	PageTypeProduct  PageType = "product"
	PageTypeCategory PageType = "category"
	PageTypeAbout    PageType = "about"
	PageTypeContact  PageType = "contact"
	PageTypePage     PageType = "page"
)

// SEOMetrics represents the complete on-page SEO analysis of one page
type SEOMetrics struct {
	Score           int              `json:"score"`
	PageType        PageType         `json:"pageType"`
	Title           TitleMetrics     `json:"title"`
	Meta            MetaMetrics      `json:"meta"`
	Headings        []HeadingMetrics `json:"headings"`
	Images          ImageMetrics     `json:"images"`
	InternalLinks   LinkMetrics      `json:"internalLinks"`
	Schema          SchemaMetrics    `json:"schema"`
	Technical       TechnicalMetrics `json:"technical"`
	Issues          []string         `json:"issues"`
	Recommendations []string         `json:"recommendations"`
}

type TitleMetrics struct {
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Length      int    `json:"length"`
	HasKeywords bool   `json:"hasKeywords"`
}

type MetaMetrics struct {
	Text   string `json:"text"`
	Score  int    `json:"score"`
	Length int    `json:"length"`
	HasCTA bool   `json:"hasCTA"`
}

type HeadingMetrics struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type ImageMetrics struct {
	Total      int `json:"total"`
	WithAlt    int `json:"withAlt"`
	MissingAlt int `json:"missingAlt"`
	Score      int `json:"score"`
}

type LinkMetrics struct {
	Total      int `json:"total"`
	WithAnchor int `json:"withAnchor"`
	Score      int `json:"score"`
}

type SchemaMetrics struct {
	HasJSONLD bool     `json:"hasJsonLD"`
	IsValid   bool     `json:"isValid"`
	Types     []string `json:"types"`
	Score     int      `json:"score"`
}

type TechnicalMetrics struct {
	HasCanonical bool   `json:"hasCanonical"`
	CanonicalURL string `json:"canonicalUrl"`
	Score        int    `json:"score"`
}

// SiteSEOMetrics is the site-level rollup of every page's SEOMetrics
type SiteSEOMetrics struct {
	Score           int              `json:"score"`
	PageCount       int              `json:"pageCount"`
	PageTypes       map[PageType]int `json:"pageTypes"`
	Issues          []string         `json:"issues"`
	Recommendations []string         `json:"recommendations"`
}
