// Package seo scores the on-page SEO factors of extracted page content.
// Scoring is deterministic: the same content always yields the same metrics.
package seo

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/seo-optimizer/semantic/models"
)

var (
	uppercaseRe     = regexp.MustCompile(`[A-Z]`)
	callToActionRe  = regexp.MustCompile(`(?i)call|click|learn|discover|get|find`)
	titleKeywordsRe = regexp.MustCompile(`(?i)seo|marketing|web|business|service`)
)

// Thresholds below which a component is reported as an issue
const (
	titleIssueThreshold = 70
	metaIssueThreshold  = 70
	noHeadingsScore     = 50
)

// PageRecommendations are attached to every scored page
var PageRecommendations = []string{
	"Optimize title tag length and keyword placement",
	"Write compelling meta descriptions with clear CTAs",
	"Implement proper heading hierarchy (H1-H6)",
	"Add alt text to all images for accessibility",
	"Include relevant internal links with descriptive anchor text",
	"Add JSON-LD structured data markup",
	"Implement canonical URLs to prevent duplicate content",
}

// Score computes the full SEOMetrics of one page
func Score(content models.PageContent) models.SEOMetrics {
	m := models.SEOMetrics{
		PageType:      DetectPageType(content.URL, content.Title, content.BodyText),
		Title:         analyzeTitle(content.Title),
		Meta:          analyzeMeta(content.MetaDescription),
		Headings:      analyzeHeadings(content.Headings),
		Images:        analyzeImages(content.Images),
		InternalLinks: analyzeLinks(content.InternalLinks),
		Schema:        analyzeSchema(content.StructuredData),
		Technical:     analyzeTechnical(content.CanonicalURL),
	}
	m.Score = overallScore(m)
	m.Issues = issues(m)
	m.Recommendations = append([]string(nil), PageRecommendations...)
	return m
}

func analyzeTitle(title string) models.TitleMetrics {
	length := utf8.RuneCountInString(title)
	t := models.TitleMetrics{Text: title, Length: length}
	if title == "" {
		return t
	}

	score := 50
	switch {
	case length >= 30 && length <= 60:
		score += 30
	case length >= 20 && length <= 70:
		score += 20
	}
	if uppercaseRe.MatchString(title) {
		score += 10
	}
	if strings.ContainsAny(title, "|-") {
		score += 10
	}
	t.Score = min(100, score)
	t.HasKeywords = titleKeywordsRe.MatchString(title)
	return t
}

func analyzeMeta(desc string) models.MetaMetrics {
	length := utf8.RuneCountInString(desc)
	m := models.MetaMetrics{Text: desc, Length: length}
	if desc == "" {
		return m
	}

	score := 40
	switch {
	case length >= 120 && length <= 160:
		score += 40
	case length >= 100 && length <= 180:
		score += 30
	}
	m.HasCTA = callToActionRe.MatchString(desc)
	if m.HasCTA {
		score += 20
	}
	m.Score = min(100, score)
	return m
}

func analyzeHeadings(headings []models.Heading) []models.HeadingMetrics {
	out := make([]models.HeadingMetrics, 0, len(headings))
	for i, h := range headings {
		score := 70
		if n := utf8.RuneCountInString(h.Text); n >= 20 && n <= 70 {
			score += 20
		}
		// only a leading H1 earns the bonus
		if h.Level == 1 && i == 0 {
			score += 10
		}
		out = append(out, models.HeadingMetrics{Level: h.Level, Text: h.Text, Score: min(100, score)})
	}
	return out
}

func analyzeImages(images []models.Image) models.ImageMetrics {
	m := models.ImageMetrics{Total: len(images), Score: 100}
	for _, img := range images {
		if strings.TrimSpace(img.Alt) != "" {
			m.WithAlt++
		}
	}
	m.MissingAlt = m.Total - m.WithAlt
	if m.Total > 0 {
		m.Score = ratioScore(m.WithAlt, m.Total)
	}
	return m
}

func analyzeLinks(links []models.Link) models.LinkMetrics {
	m := models.LinkMetrics{Total: len(links), Score: 100}
	for _, l := range links {
		if strings.TrimSpace(l.AnchorText) != "" {
			m.WithAnchor++
		}
	}
	if m.Total > 0 {
		m.Score = ratioScore(m.WithAnchor, m.Total)
	}
	return m
}

func analyzeSchema(sd models.StructuredData) models.SchemaMetrics {
	types := sd.Types
	if types == nil {
		types = []string{}
	}
	s := models.SchemaMetrics{HasJSONLD: sd.HasJSONLD, IsValid: sd.IsValid, Types: types}
	if sd.HasJSONLD {
		s.Score = 100
	}
	return s
}

func analyzeTechnical(canonical string) models.TechnicalMetrics {
	t := models.TechnicalMetrics{HasCanonical: canonical != "", CanonicalURL: canonical, Score: 50}
	if t.HasCanonical {
		t.Score = 100
	}
	return t
}

// overallScore is the unweighted mean of the seven component scores
func overallScore(m models.SEOMetrics) int {
	headings := float64(noHeadingsScore)
	if len(m.Headings) > 0 {
		sum := 0
		for _, h := range m.Headings {
			sum += h.Score
		}
		headings = float64(sum) / float64(len(m.Headings))
	}

	total := float64(m.Title.Score+m.Meta.Score+m.Images.Score+m.InternalLinks.Score+
		m.Schema.Score+m.Technical.Score) + headings
	return int(math.Round(total / 7))
}

func issues(m models.SEOMetrics) []string {
	out := []string{}
	if m.Title.Score < titleIssueThreshold {
		out = append(out, "Title tag needs optimization")
	}
	if m.Meta.Score < metaIssueThreshold {
		out = append(out, "Meta description needs improvement")
	}
	if m.Images.MissingAlt > 0 {
		out = append(out, fmt.Sprintf("%d images missing alt text", m.Images.MissingAlt))
	}

	h1 := 0
	for _, h := range m.Headings {
		if h.Level == 1 {
			h1++
		}
	}
	switch {
	case h1 == 0:
		out = append(out, "Missing H1 tag")
	case h1 > 1:
		out = append(out, "Multiple H1 tags found")
	}

	if !m.Schema.HasJSONLD {
		out = append(out, "Missing structured data markup")
	}
	if !m.Technical.HasCanonical {
		out = append(out, "Missing canonical URL")
	}
	return out
}

func ratioScore(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
