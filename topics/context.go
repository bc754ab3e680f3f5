package topics

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minSentenceLength = 20
	maxSnippetLength  = 150
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Sentences splits text on sentence punctuation, keeping only sentences
// longer than 20 characters.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minSentenceLength {
			out = append(out, s)
		}
	}
	return out
}

// ContextExamples returns up to limit sentences mentioning any word of the
// topic name, each cut to 150 characters.
func ContextExamples(sentences []string, topicName string, limit int) []string {
	words := nameWords(topicName)
	examples := []string{}
	if len(words) == 0 || limit <= 0 {
		return examples
	}

	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, w := range words {
			if strings.Contains(lower, w) {
				examples = append(examples, truncate(s, maxSnippetLength))
				break
			}
		}
		if len(examples) == limit {
			break
		}
	}
	return examples
}

// nameWords are the lowercase words of a topic name worth searching for
func nameWords(name string) []string {
	var words []string
	for _, w := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '&' || r == '/'
	}) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
