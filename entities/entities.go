// Package entities detects named entities with fixed patterns and
// dictionaries. Each matched span of text is claimed by exactly one
// category: detectors run in priority order and a later match that overlaps
// an earlier one is discarded.
package entities

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/seo-optimizer/semantic/models"
)

const (
	occurrenceWeight = 0.2
	maxConfidence    = 1.0
	minNameLength    = 3
)

// Confidence bonuses applied on top of the occurrence score
const (
	legalSuffixBonus = 0.3
	twoTokenBonus    = 0.2
	cityStateBonus   = 0.3
	acronymBonus     = 0.2
)

var (
	legalSuffixRe = regexp.MustCompile(`\b(?:Inc|LLC|Corp|Company)\b`)
	cityStateRe   = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2}$`)
	techAcronymRe = regexp.MustCompile(`\b(?:API|SDK|JS|AI)\b`)
)

// span is a candidate entity occupying text[start:end]
type span struct {
	start, end int
	name       string
	category   models.EntityCategory
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

type detector interface {
	find(text string) []span
}

// patternDetector takes the entity name from one submatch of a regexp
type patternDetector struct {
	category models.EntityCategory
	re       *regexp.Regexp
	group    int
	minLen   int
}

func (d patternDetector) find(text string) []span {
	var out []span
	for _, m := range d.re.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2*d.group], m[2*d.group+1]
		if start < 0 {
			continue
		}
		name := strings.TrimSpace(text[start:end])
		if len(name) < d.minLen {
			continue
		}
		out = append(out, span{start: start, end: end, name: name, category: d.category})
	}
	return out
}

// dictionaryDetector finds fixed terms case-insensitively. The automaton
// narrows the term list before per-term patterns locate each occurrence.
type dictionaryDetector struct {
	category models.EntityCategory
	terms    []string
	patterns []*regexp.Regexp

	// Matcher.Match mutates internal state
	mu      sync.Mutex
	matcher *ahocorasick.Matcher
}

func newDictionaryDetector(category models.EntityCategory, terms []string) *dictionaryDetector {
	lowered := make([]string, len(terms))
	patterns := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return &dictionaryDetector{
		category: category,
		terms:    terms,
		patterns: patterns,
		matcher:  ahocorasick.NewStringMatcher(lowered),
	}
}

func (d *dictionaryDetector) present(text string) []int {
	d.mu.Lock()
	hits := d.matcher.Match([]byte(strings.ToLower(text)))
	d.mu.Unlock()

	seen := make(map[int]bool, len(hits))
	unique := hits[:0]
	for _, h := range hits {
		if !seen[h] {
			seen[h] = true
			unique = append(unique, h)
		}
	}
	sort.Ints(unique)
	return unique
}

func (d *dictionaryDetector) find(text string) []span {
	var out []span
	for _, idx := range d.present(text) {
		for _, loc := range d.patterns[idx].FindAllStringIndex(text, -1) {
			out = append(out, span{start: loc[0], end: loc[1], name: d.terms[idx], category: d.category})
		}
	}
	// dictionary order is not text order
	sort.SliceStable(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// Extractor detects entities in plain text. It is safe for concurrent use.
type Extractor struct {
	detectors []detector
}

// New builds an extractor with the built-in rule set
func New() *Extractor {
	capSeq := `[A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)*`
	return &Extractor{detectors: []detector{
		patternDetector{
			category: models.CategoryOrganizations,
			re: regexp.MustCompile(`\b` + capSeq +
				`\s+(?:Inc|LLC|Corp|Corporation|Company|Co|Ltd|Limited|Foundation|Institute|University|College|School)\b\.?`),
			minLen: minNameLength,
		},
		newDictionaryDetector(models.CategoryOrganizations, wellKnownCompanies),
		patternDetector{
			category: models.CategoryPeople,
			re: regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof|Professor|CEO|CTO|CFO|President|Director|Manager|VP|Vice President|Chief|Senior|Lead|Principal)\.?\s+` +
				`([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})`),
			group:  1,
			minLen: 4,
		},
		patternDetector{
			category: models.CategoryPeople,
			re: regexp.MustCompile(`\b([A-Z][a-z]+\s+(?:van\s+|de\s+|del\s+|la\s+|le\s+)?[A-Z][a-z]+)` +
				`\s+(?:said|told|mentioned|explained|stated|announced|reported)\b`),
			group:  1,
			minLen: 4,
		},
		patternDetector{
			category: models.CategoryPeople,
			re: regexp.MustCompile(`\b(?:with|by|featuring|according to|joined by)\s+` +
				`([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,2})\b`),
			group:  1,
			minLen: 4,
		},
		patternDetector{
			category: models.CategoryLocations,
			re:       regexp.MustCompile(`\b` + capSeq + `,\s*(?:[A-Z]{2}|[A-Z][a-zA-Z]+)\b`),
			minLen:   minNameLength,
		},
		newDictionaryDetector(models.CategoryLocations, majorCities),
		newDictionaryDetector(models.CategoryTechnologies, technologyTerms),
		patternDetector{
			category: models.CategoryTechnologies,
			re: regexp.MustCompile(`\b` + capSeq +
				`\s+(?:API|SDK|Framework|Library|Platform|Service|Tool|Software|App|Application|System|Database|Server)\b`),
			minLen: minNameLength,
		},
		patternDetector{
			category: models.CategoryLocations,
			re:       regexp.MustCompile(`\b(?:in|from|at|near|around)\s+(` + capSeq + `)\b`),
			group:    1,
			minLen:   minNameLength,
		},
		patternDetector{
			category: models.CategoryMisc,
			re:       regexp.MustCompile(`\b[A-Z][a-zA-Z]{2,}(?:\s+[A-Z][a-zA-Z]+)*\b`),
			minLen:   4,
		},
	}}
}

var defaultExtractor = New()

// Extract runs the built-in rule set over text
func Extract(text string) models.EntitySet {
	return defaultExtractor.Extract(text)
}

// Extract returns every category of the set, each holding at most
// MaxEntitiesPerCategory entities sorted by confidence.
func (x *Extractor) Extract(text string) models.EntitySet {
	var claimed []span
	owner := map[string]models.EntityCategory{}
	found := map[models.EntityCategory][]string{}

	for _, d := range x.detectors {
		for _, s := range d.find(text) {
			if overlapsAny(s, claimed) {
				continue
			}
			// a name belongs to the first category that claimed it
			if c, ok := owner[s.name]; ok && c != s.category {
				continue
			}
			claimed = append(claimed, s)
			if _, ok := owner[s.name]; !ok {
				owner[s.name] = s.category
				found[s.category] = append(found[s.category], s.name)
			}
		}
	}

	set := models.NewEntitySet()
	for category, names := range found {
		list := make([]models.Entity, 0, len(names))
		for _, name := range names {
			count := countOccurrences(text, name)
			list = append(list, models.Entity{
				Name:       name,
				Category:   category,
				Confidence: Confidence(name, category, count),
				Count:      count,
			})
		}
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Confidence != list[j].Confidence {
				return list[i].Confidence > list[j].Confidence
			}
			return list[i].Name < list[j].Name
		})
		if len(list) > models.MaxEntitiesPerCategory {
			list = list[:models.MaxEntitiesPerCategory]
		}
		set[category] = list
	}
	return set
}

func overlapsAny(s span, claimed []span) bool {
	for _, c := range claimed {
		if s.overlaps(c) {
			return true
		}
	}
	return false
}

// countOccurrences counts case-insensitive, non-overlapping occurrences of name
func countOccurrences(text, name string) int {
	if name == "" {
		return 0
	}
	return strings.Count(strings.ToLower(text), strings.ToLower(name))
}

// Confidence scores an entity from its occurrence count and category rules
func Confidence(name string, category models.EntityCategory, occurrences int) float64 {
	score := math.Min(float64(occurrences)*occurrenceWeight, maxConfidence)

	switch category {
	case models.CategoryOrganizations:
		if legalSuffixRe.MatchString(name) {
			score += legalSuffixBonus
		}
	case models.CategoryPeople:
		if len(strings.Fields(name)) == 2 {
			score += twoTokenBonus
		}
	case models.CategoryLocations:
		if cityStateRe.MatchString(name) {
			score += cityStateBonus
		}
	case models.CategoryTechnologies:
		if techAcronymRe.MatchString(name) {
			score += acronymBonus
		}
	}
	return math.Round(math.Min(score, maxConfidence)*100) / 100
}
