// Package topics derives per-page topics from keyword frequencies matched
// against a fixed taxonomy, and detects the domain niche of a text.
package topics

import (
	"math"
	"sort"
	"strings"

	"github.com/seo-optimizer/semantic/models"
)

const (
	maxRelevance        = 95
	maxBoostedRelevance = 98
	nicheBoost          = 15
	relevanceBase       = 20

	maxSubtopicRelevance = 90
	topSubtopics         = 3
	groupMinFrequency    = 5
	groupMinMembers      = 2

	maxLeftoverTopics     = 2
	maxLeftoverRelevance  = 85
	leftoverBaseRelevance = 40
)

// Analyze detects the topics of one page. Entities found on the page are
// attached to every topic whose context examples mention them.
func Analyze(content models.PageContent, entities models.EntitySet) []models.Topic {
	text := CombinedText(content)
	return analyzeText(text, DetectNiche(text), content.URL, entities)
}

// CombinedText joins the title, headings and body the way topic and niche
// detection read a page.
func CombinedText(content models.PageContent) string {
	return content.Title + " " + strings.Join(content.HeadingTexts(), " ") + " " + content.BodyText
}

func analyzeText(text string, niche models.DomainNiche, pageURL string, entities models.EntitySet) []models.Topic {
	keywords := Keywords(text)
	if len(keywords) == 0 {
		return []models.Topic{}
	}
	sentences := Sentences(text)

	var topics []models.Topic
	used := map[string]bool{}

	for _, def := range topicTable {
		matched := matchingKeywords(keywords, def.triggers)
		if len(matched) == 0 {
			continue
		}
		total := 0
		for _, k := range matched {
			used[k.Word] = true
			total += k.Frequency
		}

		relevance := int(math.Min(maxRelevance,
			math.Round(float64(total)/float64(len(keywords))*100)+relevanceBase))
		if boosted(niche.Primary, def.name) {
			relevance = min(maxBoostedRelevance, relevance+nicheBoost)
		}

		topics = append(topics, newTopic(def.name, total, relevance,
			subtopics(matched, keywords, def.triggers, relevance),
			capitalizedWords(matched),
			ContextExamples(sentences, def.name, def.snippetLimit),
			pageURL, entities))
	}

	leftovers := 0
	for _, k := range keywords {
		if leftovers == maxLeftoverTopics {
			break
		}
		if used[k.Word] {
			continue
		}
		leftovers++
		name := capitalize(k.Word)
		topics = append(topics, newTopic(name, k.Frequency,
			min(maxLeftoverRelevance, leftoverBaseRelevance+k.Frequency*2),
			[]models.Topic{}, []string{name},
			ContextExamples(sentences, name, leftoverSnippetLimit),
			pageURL, entities))
	}

	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Relevance > topics[j].Relevance })
	if len(topics) > models.MaxTopicsPerPage {
		topics = topics[:models.MaxTopicsPerPage]
	}
	return topics
}

func newTopic(name string, freq, relevance int, subs []models.Topic, related, examples []string,
	pageURL string, entities models.EntitySet) models.Topic {
	t := models.Topic{
		Name:            name,
		Frequency:       freq,
		Relevance:       relevance,
		Subtopics:       subs,
		RelatedEntities: related,
		ContextExamples: examples,
		Entities:        entitiesInExamples(entities, examples),
		Pages:           []string{},
	}
	if pageURL != "" {
		t.Pages = append(t.Pages, pageURL)
	}
	return t
}

func matchingKeywords(keywords []Keyword, triggers []string) []Keyword {
	var out []Keyword
	for _, k := range keywords {
		for _, trig := range triggers {
			if matches(k.Word, trig) {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

// subtopics wraps the top matched keywords and adds one subtopic per
// group of related frequent keywords.
func subtopics(matched, keywords []Keyword, triggers []string, relevance int) []models.Topic {
	top := matched
	if len(top) > topSubtopics {
		top = top[:topSubtopics]
	}
	related := capitalizedWords(top)

	subs := make([]models.Topic, 0, len(top))
	taken := map[string]bool{}
	for _, k := range top {
		taken[k.Word] = true
		subs = append(subs, subtopic(capitalize(k.Word), k.Frequency, relevance, related))
	}

	for _, g := range groupKeywords(keywords, taken) {
		if !anyMatches(g.members, triggers) {
			continue
		}
		if containsName(subs, g.name) {
			continue
		}
		subs = append(subs, subtopic(g.name, g.frequency(), relevance, capitalizedWords(g.members)))
	}
	return subs
}

func subtopic(name string, freq, parentRelevance int, related []string) models.Topic {
	return models.Topic{
		Name:            name,
		Frequency:       freq,
		Relevance:       min(maxSubtopicRelevance, parentRelevance-10+min(20, freq*2)),
		Subtopics:       []models.Topic{},
		RelatedEntities: related,
		ContextExamples: []string{},
		Pages:           []string{},
	}
}

type keywordGroup struct {
	name    string
	members []Keyword
}

func (g keywordGroup) frequency() int {
	total := 0
	for _, m := range g.members {
		total += m.Frequency
	}
	return total
}

// groupKeywords clusters frequent keywords by synonym group or shared stem.
// Only groups with at least two members are returned.
func groupKeywords(keywords []Keyword, exclude map[string]bool) []keywordGroup {
	index := map[string]int{}
	var groups []keywordGroup

	for _, k := range keywords {
		if k.Frequency < groupMinFrequency || exclude[k.Word] {
			continue
		}
		key, name := groupKey(k.Word)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, keywordGroup{name: name})
		}
		groups[i].members = append(groups[i].members, k)
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.members) >= groupMinMembers {
			out = append(out, g)
		}
	}
	return out
}

func groupKey(word string) (key, name string) {
	for _, g := range synonymGroups {
		for _, w := range g.words {
			if w == word {
				return "syn:" + g.name, g.name
			}
		}
	}
	s := stem(word)
	return "stem:" + s, capitalize(s)
}

func anyMatches(members []Keyword, triggers []string) bool {
	for _, m := range members {
		for _, t := range triggers {
			if matches(m.Word, t) {
				return true
			}
		}
	}
	return false
}

func containsName(topics []models.Topic, name string) bool {
	for _, t := range topics {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func capitalizedWords(keywords []Keyword) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, capitalize(k.Word))
	}
	return out
}

// entitiesInExamples keeps the entities mentioned by any context example
func entitiesInExamples(entities models.EntitySet, examples []string) models.EntitySet {
	if len(entities) == 0 || len(examples) == 0 {
		return nil
	}
	joined := strings.Join(examples, " ")
	out := models.EntitySet{}
	for _, c := range models.EntityCategories {
		for _, e := range entities[c] {
			if strings.Contains(joined, e.Name) {
				out[c] = append(out[c], e)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
