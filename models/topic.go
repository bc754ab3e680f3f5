package models

// Topic is a theme detected on a single page. Subtopics are one level deep.
type Topic struct {
	Name            string    `json:"name"`
	Frequency       int       `json:"frequency"`
	Relevance       int       `json:"relevance"`
	Subtopics       []Topic   `json:"subtopics"`
	RelatedEntities []string  `json:"relatedEntities"`
	ContextExamples []string  `json:"contextExamples"`
	Entities        EntitySet `json:"entities,omitempty"`
	Pages           []string  `json:"pages"`
}

// ConsolidatedTopic merges same-named topics across all crawled pages
type ConsolidatedTopic struct {
	Topic
	PageCount           int     `json:"pageCount"`
	AvgFrequencyPerPage float64 `json:"avgFrequencyPerPage"`
	TotalMentions       int     `json:"totalMentions"`
	CrossPageRelevance  int     `json:"crossPageRelevance"`
}

// EffectiveRelevance prefers the cross-page figure when it was computed
func (c ConsolidatedTopic) EffectiveRelevance() int {
	if c.CrossPageRelevance > 0 {
		return c.CrossPageRelevance
	}
	return c.Relevance
}

type SemanticCluster struct {
	Name            string   `json:"name"`
	Topics          []Topic  `json:"topics"`
	TotalMentions   int      `json:"totalMentions"`
	AvgRelevance    int      `json:"avgRelevance"`
	UniqueEntities  []string `json:"uniqueEntities"`
	PageSpread      int      `json:"pageSpread"`
	ContextExamples []string `json:"contextExamples"`
	DominanceScore  int      `json:"dominanceScore"`
}

// DomainNiche is the best matching business category for a site
type DomainNiche struct {
	Primary string         `json:"primary"`
	Score   int            `json:"score"`
	All     map[string]int `json:"all"`
}
