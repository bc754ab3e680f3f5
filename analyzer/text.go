package analyzer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/seo-optimizer/semantic/aggregate"
	"github.com/seo-optimizer/semantic/entities"
	"github.com/seo-optimizer/semantic/models"
	"github.com/seo-optimizer/semantic/seo"
	"github.com/seo-optimizer/semantic/topics"
)

const (
	// TextSource is the Analysis URL of a text-mode run
	TextSource      = "Direct Content Analysis"
	textDescription = "Analysis of provided text content"
	textTopicSlugs  = 5
)

// textSuggestions are appended after the topic slugs in text mode
var textSuggestions = []string{"content-analysis", "text-insights", "entity-extraction"}

// analyzeText skips crawling and analyzes input as one synthetic page
func (a *Analyzer) analyzeText(input string) (models.Analysis, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return models.Analysis{}, &ValidationError{Field: "input", Message: "Please provide some text to analyze."}
	}

	content := models.PageContent{
		Title:           TextSource,
		MetaDescription: textDescription,
		Headings:        []models.Heading{},
		Images:          []models.Image{},
		InternalLinks:   []models.Link{},
		StructuredData:  models.StructuredData{Types: []string{}},
		BodyText:        text,
	}
	ents := entities.Extract(text)
	page := models.PageResult{
		Content:    content,
		Topics:     topics.Analyze(content, ents),
		Entities:   ents,
		SEOMetrics: seo.Score(content),
		CrawledAt:  a.now(),
	}
	pages := []models.PageResult{page}
	consolidated := aggregate.ConsolidateTopics(pages)

	return models.Analysis{
		ID:             uuid.NewString(),
		URL:            TextSource,
		Mode:           models.ModeText,
		Timestamp:      a.now(),
		Pages:          pages,
		Topics:         consolidated,
		Entities:       aggregate.MergeEntities(pages),
		DomainNiche:    topics.DetectNiche(text),
		SEOMetrics:     seo.Text(text, page.SEOMetrics),
		URLSuggestions: textURLSuggestions(consolidated),
	}, nil
}

// textURLSuggestions slugs the five leading topics, then the fixed entries
func textURLSuggestions(list []models.ConsolidatedTopic) []string {
	out := make([]string, 0, textTopicSlugs+len(textSuggestions))
	seen := make(map[string]bool)
	for _, t := range list {
		if len(out) == textTopicSlugs {
			break
		}
		slug := aggregate.FormatURL(t.Name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	for _, s := range textSuggestions {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}
