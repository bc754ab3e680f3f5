package topics

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxKeywords = 20

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// Keyword is a counted token of page text
type Keyword struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// shortTerms are the one and two letter terms of the topic, synonym and
// niche tables ("ai", "ux"). Tokenize keeps them and matches compares them
// exactly.
var shortTerms = collectShortTerms()

func collectShortTerms() map[string]bool {
	set := map[string]bool{}
	add := func(words []string) {
		for _, w := range words {
			if utf8.RuneCountInString(w) <= 2 {
				set[w] = true
			}
		}
	}
	for _, def := range topicTable {
		add(def.triggers)
	}
	for _, g := range synonymGroups {
		add(g.words)
	}
	for _, def := range nicheTable {
		add(def.terms)
	}
	return set
}

// Tokenize lowercases text and splits it into words longer than two
// characters, dropping stop words. Short table terms are kept.
func Tokenize(text string) []string {
	fields := strings.Fields(nonWordRe.ReplaceAllString(strings.ToLower(text), " "))
	words := fields[:0]
	for _, w := range fields {
		if stopWords[w] {
			continue
		}
		if utf8.RuneCountInString(w) > 2 || shortTerms[w] {
			words = append(words, w)
		}
	}
	return words
}

// Keywords returns the 20 most frequent words of text. Ties keep first
// appearance order.
func Keywords(text string) []Keyword {
	counts := map[string]int{}
	var order []string
	for _, w := range Tokenize(text) {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	keywords := make([]Keyword, 0, len(order))
	for _, w := range order {
		keywords = append(keywords, Keyword{Word: w, Frequency: counts[w]})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Frequency > keywords[j].Frequency
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// matches reports whether word and trigger contain one another. Short terms
// only match themselves, so "ai" never hits "email".
func matches(word, trigger string) bool {
	if shortTerms[word] || shortTerms[trigger] {
		return word == trigger
	}
	return strings.Contains(word, trigger) || strings.Contains(trigger, word)
}

var stemSuffixes = []string{"ations", "ation", "ments", "ment", "ings", "ing", "ers", "er", "ies", "ed", "es", "ly", "s"}

// stem strips one common English suffix, keeping at least three letters
func stem(word string) string {
	for _, suf := range stemSuffixes {
		if strings.HasSuffix(word, suf) && len(word)-len(suf) >= 3 {
			return strings.TrimSuffix(word, suf)
		}
	}
	return word
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return strings.ToUpper(string(r)) + word[size:]
}
