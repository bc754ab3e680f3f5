package seo

import (
	"math"

	"github.com/seo-optimizer/semantic/models"
)

// SiteRecommendations summarize remediation across a crawled site
var SiteRecommendations = []string{
	"Optimize page titles and meta descriptions across all pages",
	"Implement consistent heading hierarchy site-wide",
	"Add missing alt text to images",
	"Improve internal linking structure",
	"Add structured data markup to key pages",
	"Ensure all pages have canonical URLs",
}

// TextRecommendations accompany the reduced metrics of raw text input
var TextRecommendations = []string{
	"Consider structuring content with clear headings",
	"Ensure key entities are properly emphasized",
	"Add more descriptive context around important terms",
}

const (
	shortTextLength   = 100
	fullTextLength    = 50
	minTextScoreRatio = 0.3
)

// Site rolls per-page metrics up into a site score: the rounded mean of
// every page score. Issues keep first-seen order without duplicates.
func Site(pages []models.SEOMetrics) models.SiteSEOMetrics {
	site := models.SiteSEOMetrics{
		PageCount:       len(pages),
		PageTypes:       map[models.PageType]int{},
		Issues:          []string{},
		Recommendations: append([]string(nil), SiteRecommendations...),
	}
	if len(pages) == 0 {
		return site
	}

	sum := 0
	seen := map[string]bool{}
	for _, p := range pages {
		sum += p.Score
		site.PageTypes[p.PageType]++
		for _, issue := range p.Issues {
			if !seen[issue] {
				seen[issue] = true
				site.Issues = append(site.Issues, issue)
			}
		}
	}
	site.Score = int(math.Round(float64(sum) / float64(len(pages))))
	return site
}

// Text scores raw text input by length alone. page is the metrics of the
// synthetic page wrapping the text.
func Text(text string, page models.SEOMetrics) models.SiteSEOMetrics {
	n := len([]rune(text))
	ratio := math.Min(1, math.Max(minTextScoreRatio, float64(n)/fullTextLength))

	m := models.SiteSEOMetrics{
		Score:           int(math.Round(ratio * 100)),
		PageCount:       1,
		PageTypes:       map[models.PageType]int{page.PageType: 1},
		Issues:          []string{},
		Recommendations: append([]string(nil), TextRecommendations...),
	}
	if n < shortTextLength {
		m.Issues = append(m.Issues, "Content too short for comprehensive analysis")
	}
	return m
}
