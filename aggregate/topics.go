// Package aggregate merges per-page results of a crawl into the site-level
// views of an Analysis: consolidated topics, merged entities, semantic
// clusters, URL suggestions and the topic hierarchy.
package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/seo-optimizer/semantic/models"
)

const (
	multiPageBonus     = 5
	maxContextExamples = 4
)

// ConsolidateTopics merges same-named topics (case-insensitive) across pages.
// Frequencies add up, relevance is averaged, and topics found on more than
// one page get a cross-page bonus of five points per page.
func ConsolidateTopics(pages []models.PageResult) []models.ConsolidatedTopic {
	type acc struct {
		topic     models.Topic
		relevance int
		seen      int
		pages     map[string]bool
	}
	index := map[string]*acc{}
	var order []string

	for _, page := range pages {
		for _, t := range page.Topics {
			key := strings.ToLower(strings.TrimSpace(t.Name))
			if key == "" {
				continue
			}
			a, ok := index[key]
			if !ok {
				a = &acc{topic: cloneTopic(t), pages: map[string]bool{}}
				a.topic.Frequency = 0
				a.topic.Pages = []string{}
				index[key] = a
				order = append(order, key)
			} else {
				mergeTopic(&a.topic, t)
			}
			a.topic.Frequency += t.Frequency
			a.relevance += t.Relevance
			a.seen++
			for _, u := range append([]string{page.URL}, t.Pages...) {
				if u != "" && !a.pages[u] {
					a.pages[u] = true
					a.topic.Pages = append(a.topic.Pages, u)
				}
			}
		}
	}

	out := make([]models.ConsolidatedTopic, 0, len(order))
	for _, key := range order {
		a := index[key]
		pageCount := max(1, len(a.topic.Pages))
		mean := float64(a.relevance) / float64(a.seen)

		cross := mean
		if pageCount > 1 {
			cross += float64(pageCount * multiPageBonus)
		}

		c := models.ConsolidatedTopic{
			Topic:               a.topic,
			PageCount:           pageCount,
			AvgFrequencyPerPage: round2(float64(a.topic.Frequency) / float64(pageCount)),
			TotalMentions:       a.topic.Frequency,
			CrossPageRelevance:  int(math.Min(100, math.Round(cross))),
		}
		c.Relevance = int(math.Round(mean))
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CrossPageRelevance != out[j].CrossPageRelevance {
			return out[i].CrossPageRelevance > out[j].CrossPageRelevance
		}
		return out[i].TotalMentions > out[j].TotalMentions
	})
	return out
}

func cloneTopic(t models.Topic) models.Topic {
	c := t
	c.Subtopics = append([]models.Topic{}, t.Subtopics...)
	c.RelatedEntities = append([]string{}, t.RelatedEntities...)
	c.ContextExamples = append([]string{}, t.ContextExamples...)
	if len(c.ContextExamples) > maxContextExamples {
		c.ContextExamples = c.ContextExamples[:maxContextExamples]
	}
	c.Entities = mergeEntitySets(nil, t.Entities)
	return c
}

// mergeTopic folds the descriptive fields of t into dst. Counters are
// handled by the caller.
func mergeTopic(dst *models.Topic, t models.Topic) {
	for _, sub := range t.Subtopics {
		if !hasTopic(dst.Subtopics, sub.Name) {
			dst.Subtopics = append(dst.Subtopics, sub)
		}
	}
	dst.RelatedEntities = appendUnique(dst.RelatedEntities, t.RelatedEntities...)
	for _, ex := range t.ContextExamples {
		if len(dst.ContextExamples) == maxContextExamples {
			break
		}
		dst.ContextExamples = appendUnique(dst.ContextExamples, ex)
	}
	dst.Entities = mergeEntitySets(dst.Entities, t.Entities)
}

func mergeEntitySets(dst, src models.EntitySet) models.EntitySet {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = models.EntitySet{}
	}
	for _, c := range models.EntityCategories {
		for _, e := range src[c] {
			if !dst.Contains(c, e.Name) {
				dst[c] = append(dst[c], e)
			}
		}
	}
	return dst
}

func hasTopic(topics []models.Topic, name string) bool {
	for _, t := range topics {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, existing := range list {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
