package aggregate

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/seo-optimizer/semantic/models"
)

const suggestionTopics = 10

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe   = regexp.MustCompile(`\s+`)
	slugDashRe    = regexp.MustCompile(`-+`)
)

// FormatURL turns free text into a URL slug. Applying it twice yields the
// same slug.
func FormatURL(text string) string {
	s := strings.ToLower(text)
	s = slugInvalidRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugDashRe.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}

// Suggestions proposes URL paths: slugs of the ten most relevant topics
// followed by the paths of crawled pages, without duplicates.
func Suggestions(topics []models.ConsolidatedTopic, pages []models.PageResult) []string {
	ranked := append([]models.ConsolidatedTopic(nil), topics...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EffectiveRelevance() > ranked[j].EffectiveRelevance()
	})
	if len(ranked) > suggestionTopics {
		ranked = ranked[:suggestionTopics]
	}

	out := []string{}
	add := func(s string) bool {
		if s != "" {
			out = appendUnique(out, s)
		}
		return len(out) < models.MaxURLSuggestions
	}

	for _, t := range ranked {
		if !add(FormatURL(t.Name)) {
			return out
		}
	}
	for _, p := range pages {
		u, err := url.Parse(p.URL)
		if err != nil {
			continue
		}
		if !add(strings.Join(splitPath(u.Path), "/")) {
			return out
		}
	}
	return out
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// URL categories by suggestion depth
const (
	URLCategory    = "Category"
	URLSubcategory = "Subcategory"
	URLContent     = "Content"
	URLDeep        = "Deep"
)

// CategorizeURL reports the path depth of a suggestion and its category
func CategorizeURL(suggestion string) (label string, depth int) {
	depth = len(splitPath(suggestion))
	switch depth {
	case 1:
		return URLCategory, depth
	case 2:
		return URLSubcategory, depth
	case 3:
		return URLContent, depth
	}
	return URLDeep, depth
}
