package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/seo-optimizer/semantic/models"
)

// DomainSpecificCluster collects topics no semantic bucket claims
const DomainSpecificCluster = "Domain Specific"

const (
	maxClusterEntities = 10
	maxClusterExamples = 3
)

// semanticBuckets are tested in order; the first bucket with a keyword
// contained in the topic name wins.
var semanticBuckets = []struct {
	name     string
	keywords []string
}{
	{"Technology", []string{"technology", "tech", "software", "development", "web", "code", "cloud", "app", "platform", "security", "performance", "innovation"}},
	{"Marketing", []string{"marketing", "seo", "advertising", "campaign", "brand", "social", "traffic"}},
	{"Business", []string{"business", "strategy", "commerce", "sales", "revenue", "growth", "customer", "market"}},
	{"Content Creation", []string{"content", "blog", "article", "writing", "media", "video", "story"}},
	{"Analytics & Metrics", []string{"analytics", "data", "metrics", "insights", "reporting", "statistics"}},
	{"User Experience", []string{"user", "experience", "design", "interface", "usability", "accessibility"}},
}

func bucketFor(topicName string) string {
	name := strings.ToLower(topicName)
	for _, b := range semanticBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(name, kw) {
				return b.name
			}
		}
	}
	return DomainSpecificCluster
}

// Clusters groups consolidated topics into semantic buckets, ranked by
// dominance = mentions + 5 per topic + 3 per distinct page-count bucket.
func Clusters(topics []models.ConsolidatedTopic) []models.SemanticCluster {
	index := map[string][]models.ConsolidatedTopic{}
	var order []string
	for _, t := range topics {
		b := bucketFor(t.Name)
		if _, ok := index[b]; !ok {
			order = append(order, b)
		}
		index[b] = append(index[b], t)
	}

	clusters := make([]models.SemanticCluster, 0, len(order))
	for _, name := range order {
		clusters = append(clusters, buildCluster(name, index[name]))
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].DominanceScore > clusters[j].DominanceScore
	})
	if len(clusters) > models.MaxClusters {
		clusters = clusters[:models.MaxClusters]
	}
	return clusters
}

func buildCluster(name string, members []models.ConsolidatedTopic) models.SemanticCluster {
	c := models.SemanticCluster{
		Name:            name,
		Topics:          make([]models.Topic, 0, len(members)),
		UniqueEntities:  []string{},
		ContextExamples: []string{},
	}

	relevance := 0
	buckets := map[int]bool{}
	for _, t := range members {
		c.Topics = append(c.Topics, t.Topic)
		c.TotalMentions += t.TotalMentions
		relevance += t.EffectiveRelevance()
		buckets[t.PageCount] = true

		for _, e := range append(append([]string{}, t.RelatedEntities...), t.Entities.Names()...) {
			if len(c.UniqueEntities) < maxClusterEntities {
				c.UniqueEntities = appendUnique(c.UniqueEntities, e)
			}
		}
		for _, ex := range t.ContextExamples {
			if len(c.ContextExamples) < maxClusterExamples {
				c.ContextExamples = appendUnique(c.ContextExamples, ex)
			}
		}
	}

	c.AvgRelevance = int(math.Round(float64(relevance) / float64(len(members))))
	c.PageSpread = len(buckets)
	c.DominanceScore = c.TotalMentions + len(members)*5 + c.PageSpread*3
	return c
}
