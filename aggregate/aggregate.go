package aggregate

import (
	"strings"

	"github.com/seo-optimizer/semantic/models"
	"github.com/seo-optimizer/semantic/seo"
	"github.com/seo-optimizer/semantic/topics"
)

// Site holds every site-level view derived from a set of crawled pages
type Site struct {
	Topics           []models.ConsolidatedTopic
	Entities         []models.MergedEntity
	DomainNiche      models.DomainNiche
	SEOMetrics       models.SiteSEOMetrics
	SemanticClusters []models.SemanticCluster
	URLSuggestions   []string
}

// Aggregate derives the site-level views of pages
func Aggregate(pages []models.PageResult) Site {
	consolidated := ConsolidateTopics(pages)

	metrics := make([]models.SEOMetrics, 0, len(pages))
	texts := make([]string, 0, len(pages))
	for _, p := range pages {
		metrics = append(metrics, p.SEOMetrics)
		texts = append(texts, topics.CombinedText(p.Content))
	}

	return Site{
		Topics:           consolidated,
		Entities:         MergeEntities(pages),
		DomainNiche:      topics.DetectNiche(strings.Join(texts, " ")),
		SEOMetrics:       seo.Site(metrics),
		SemanticClusters: Clusters(consolidated),
		URLSuggestions:   Suggestions(consolidated, pages),
	}
}
