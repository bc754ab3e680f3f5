package models

import "time"

// CrawlSummary describes the crawl that produced an Analysis
type CrawlSummary struct {
	TotalPages int              `json:"totalPages"`
	Domain     string           `json:"domain"`
	PageTypes  map[PageType]int `json:"pageTypes"`
	CrawledAt  time.Time        `json:"crawledAt"`
}

// Analysis is the terminal record of one analysis run. It is immutable once
// built; stores may only save or delete it.
type Analysis struct {
	ID               string              `json:"id"`
	URL              string              `json:"url"`
	Mode             Mode                `json:"mode"`
	Timestamp        time.Time           `json:"timestamp"`
	Pages            []PageResult        `json:"pages"`
	Topics           []ConsolidatedTopic `json:"topics"`
	Entities         []MergedEntity      `json:"entities"`
	DomainNiche      DomainNiche         `json:"domainNiche"`
	SEOMetrics       SiteSEOMetrics      `json:"seoMetrics"`
	SemanticClusters []SemanticCluster   `json:"semanticClusters,omitempty"`
	URLSuggestions   []string            `json:"urlSuggestions"`
	CrawlSummary     *CrawlSummary       `json:"crawlSummary,omitempty"`
}
