package models

import (
	"fmt"
	"time"
)

// Heading is a single h1-h6 element in document order
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// String renders the heading as "H{level}: {text}"
func (h Heading) String() string {
	return fmt.Sprintf("H%d: %s", h.Level, h.Text)
}

type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

type Link struct {
	Href       string `json:"href"`
	AnchorText string `json:"anchorText"`
}

// StructuredData summarizes the JSON-LD blocks found on a page
type StructuredData struct {
	HasJSONLD bool     `json:"hasJsonLD"`
	IsValid   bool     `json:"isValid"`
	Types     []string `json:"types"`
}

// PageContent is the normalized content record of one fetched page.
// It is built once by the extractor and never modified afterwards.
type PageContent struct {
	URL             string         `json:"url"`
	Title           string         `json:"title"`
	MetaDescription string         `json:"metaDescription"`
	CanonicalURL    string         `json:"canonicalUrl"`
	Headings        []Heading      `json:"headings"`
	Images          []Image        `json:"images"`
	InternalLinks   []Link         `json:"internalLinks"`
	StructuredData  StructuredData `json:"structuredData"`
	BodyText        string         `json:"bodyText"`
	Byline          string         `json:"byline,omitempty"`
	SiteName        string         `json:"siteName,omitempty"`
	Fallback        bool           `json:"fallback,omitempty"`
}

// HeadingTexts returns the plain heading texts in document order
func (p PageContent) HeadingTexts() []string {
	out := make([]string, 0, len(p.Headings))
	for _, h := range p.Headings {
		out = append(out, h.Text)
	}
	return out
}

// FallbackPage builds the placeholder content used when the seed URL
// could not be fetched at all.
func FallbackPage(url string) PageContent {
	return PageContent{
		URL:            url,
		Title:          FallbackTitle,
		Headings:       []Heading{},
		Images:         []Image{},
		InternalLinks:  []Link{},
		StructuredData: StructuredData{IsValid: true, Types: []string{}},
		Fallback:       true,
	}
}

// PageResult is one crawled page with its per-page analysis
type PageResult struct {
	URL        string      `json:"url"`
	Content    PageContent `json:"content"`
	Topics     []Topic     `json:"topics"`
	Entities   EntitySet   `json:"entities"`
	SEOMetrics SEOMetrics  `json:"seoMetrics"`
	CrawledAt  time.Time   `json:"crawledAt"`
	Fallback   bool        `json:"fallback,omitempty"`
}
