package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	reportWidth = 50
	ruleWidth   = 20
)

// writeText renders a human-readable report
func writeText(w io.Writer, doc Document, sections Sections) error {
	var b strings.Builder
	rule := strings.Repeat("─", ruleWidth) + "\n"

	b.WriteString("SEO Analysis Report\n")
	fmt.Fprintf(&b, "URL: %s\n", doc.Metadata.URL)
	fmt.Fprintf(&b, "Generated: %s\n", doc.Metadata.ExportedAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString(strings.Repeat("=", reportWidth) + "\n\n")

	if sections.Topics {
		fmt.Fprintf(&b, "TOPICS (%d)\n%s", len(doc.Topics), rule)
		for _, t := range doc.Topics {
			fmt.Fprintf(&b, "• %s (%d mentions, %d%% relevance)\n", t.Name, t.Frequency, t.Relevance)
		}
		b.WriteString("\n")
	}

	if sections.Entities {
		fmt.Fprintf(&b, "ENTITIES (%d)\n%s", len(doc.Entities), rule)
		for _, e := range doc.Entities {
			fmt.Fprintf(&b, "• %s [%s] x%d\n", e.Name, e.Category, e.Count)
		}
		b.WriteString("\n")
	}

	if sections.SEOMetrics && doc.SEOMetrics != nil {
		m := doc.SEOMetrics
		fmt.Fprintf(&b, "SEO METRICS\n%s", rule)
		fmt.Fprintf(&b, "Overall Score: %d/100\n", m.Score)
		fmt.Fprintf(&b, "Pages Analyzed: %d\n", m.PageCount)
		if len(m.PageTypes) > 0 {
			types := make([]string, 0, len(m.PageTypes))
			for t, n := range m.PageTypes {
				types = append(types, fmt.Sprintf("%s=%d", t, n))
			}
			sort.Strings(types)
			fmt.Fprintf(&b, "Page Types: %s\n", strings.Join(types, ", "))
		}
		for _, issue := range m.Issues {
			fmt.Fprintf(&b, "! %s\n", issue)
		}
		b.WriteString("\n")
	}

	if sections.URLSuggestions {
		fmt.Fprintf(&b, "URL SUGGESTIONS (%d)\n%s", len(doc.URLSuggestions), rule)
		for _, u := range doc.URLSuggestions {
			fmt.Fprintf(&b, "• /%s/\n", u)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
