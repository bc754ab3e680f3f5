package models

import "time"

// Crawl limits and shared tuning parameters. Both the topic analyzer and
// hierarchy consumers read MainTopicRelevanceThreshold from here.
const (
	MaxPages         = 25
	DefaultBatchSize = 3
	BatchDelay       = 500 * time.Millisecond
	BodyTextLimit    = 5000

	MainTopicRelevanceThreshold = 70

	MaxTopicsPerPage       = 8
	MaxEntitiesPerCategory = 10
	MaxClusters            = 8
	MaxURLSuggestions      = 15

	FallbackTitle = "Analysis Failed"
)

// Mode selects how Analyze interprets its input
type Mode string

const (
	ModeURL  Mode = "url"
	ModeText Mode = "text"
)
