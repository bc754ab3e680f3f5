// Package extractor turns fetched markup into normalized page content and
// discovers further same-domain pages to crawl.
package extractor

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/models"
)

// ParseError reports a malformed JSON-LD block. It never aborts extraction.
type ParseError struct {
	URL   string
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse json-ld block %d on %s: %v", e.Index, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// mainContentSelectors are tried in order; the first match supplies the body text
var mainContentSelectors = []string{
	"main", "article", ".content", ".post", ".entry",
	`[role="main"]`, ".main-content", "#content",
}

const minBlockTextLength = 20

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extractor builds PageContent records from HTML
type Extractor struct {
	logger logging.Logger
	enrich bool
}

// New creates an extractor. With enrich set, go-readability supplies byline
// and site name metadata.
func New(logger logging.Logger, enrich bool) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{logger: logger, enrich: enrich}
}

// Parse builds a goquery document from markup
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Extract parses html fetched from pageURL. The returned document is kept for
// link discovery; script and style nodes have been stripped from it.
func (e *Extractor) Extract(pageURL, html string) (models.PageContent, *goquery.Document, error) {
	doc, err := Parse(html)
	if err != nil {
		return models.PageContent{}, nil, err
	}
	content := e.FromDocument(doc, pageURL)
	if e.enrich {
		e.addReadability(&content, html, pageURL)
	}
	return content, doc, nil
}

// FromDocument extracts every field of PageContent from doc
func (e *Extractor) FromDocument(doc *goquery.Document, pageURL string) models.PageContent {
	base, _ := url.Parse(pageURL)

	content := models.PageContent{
		URL:             pageURL,
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: doc.Find(`meta[name="description"]`).First().AttrOr("content", ""),
		CanonicalURL:    doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
		Headings:        extractHeadings(doc),
		Images:          extractImages(doc, base),
		InternalLinks:   extractInternalLinks(doc, base),
		StructuredData:  e.extractStructuredData(doc, pageURL),
	}

	// JSON-LD has been read; scripts must not leak into body text
	doc.Find("script,noscript,style").Remove()
	content.BodyText = extractBodyText(doc)
	return content
}

func extractHeadings(doc *goquery.Document) []models.Heading {
	headings := []models.Heading{}
	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(_ int, s *goquery.Selection) {
		level := int(goquery.NodeName(s)[1] - '0')
		h := models.Heading{Level: level, Text: normalizeSpace(s.Text())}
		if len(h.String()) > 3 {
			headings = append(headings, h)
		}
	})
	return headings
}

func extractImages(doc *goquery.Document, base *url.URL) []models.Image {
	images := []models.Image{}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if base != nil && src != "" {
			if ref, err := url.Parse(src); err == nil {
				src = base.ResolveReference(ref).String()
			}
		}
		images = append(images, models.Image{
			Src:   src,
			Alt:   s.AttrOr("alt", ""),
			Title: s.AttrOr("title", ""),
		})
	})
	return images
}

func extractInternalLinks(doc *goquery.Document, base *url.URL) []models.Link {
	links := []models.Link{}
	if base == nil {
		return links
	}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		abs, ok := resolve(base, s.AttrOr("href", ""))
		if !ok || abs.Hostname() != base.Hostname() {
			return
		}
		links = append(links, models.Link{
			Href:       abs.String(),
			AnchorText: normalizeSpace(s.Text()),
		})
	})
	return links
}

// resolve turns href into an absolute http(s) URL relative to base
func resolve(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return nil, false
	}
	return abs, true
}

func (e *Extractor) extractStructuredData(doc *goquery.Document, pageURL string) models.StructuredData {
	sd := models.StructuredData{IsValid: true, Types: []string{}}
	seen := map[string]bool{}

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		sd.HasJSONLD = true

		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			sd.IsValid = false
			e.logger.Warn("Invalid structured data",
				logging.String("url", pageURL),
				logging.Err(&ParseError{URL: pageURL, Index: i, Err: err}))
			return
		}
		for _, t := range schemaTypes(data) {
			if !seen[t] {
				seen[t] = true
				sd.Types = append(sd.Types, t)
			}
		}
	})
	return sd
}

// schemaTypes collects @type values from a decoded JSON-LD block
func schemaTypes(data interface{}) []string {
	var types []string
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			types = append(types, schemaTypes(item)...)
		}
	case map[string]interface{}:
		switch t := v["@type"].(type) {
		case string:
			types = append(types, t)
		case []interface{}:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types = append(types, s)
				}
			}
		}
		if graph, ok := v["@graph"]; ok {
			types = append(types, schemaTypes(graph)...)
		}
	}
	return types
}

func extractBodyText(doc *goquery.Document) string {
	var text string
	for _, selector := range mainContentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			text = normalizeSpace(sel.Text())
			break
		}
	}

	if text == "" {
		var parts []string
		doc.Find("p,div,article,section").Each(func(_ int, s *goquery.Selection) {
			t := normalizeSpace(s.Text())
			if len(t) > minBlockTextLength {
				parts = append(parts, t)
			}
		})
		text = strings.Join(parts, " ")
	}
	return truncateRunes(text, models.BodyTextLimit)
}

func (e *Extractor) addReadability(content *models.PageContent, html, pageURL string) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), u)
	if err != nil {
		e.logger.Debug("Readability enrichment skipped", logging.String("url", pageURL), logging.Err(err))
		return
	}
	content.Byline = normalizeSpace(article.Byline)
	content.SiteName = normalizeSpace(article.SiteName)
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
