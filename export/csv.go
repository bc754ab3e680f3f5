package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// writeCSV emits one block per section, separated by blank lines
func writeCSV(w io.Writer, doc Document, sections Sections) error {
	cw := csv.NewWriter(w)
	var rows [][]string

	if sections.Topics {
		rows = append(rows, []string{"Topics"}, []string{"Name", "Frequency", "Relevance", "Pages"})
		for _, t := range doc.Topics {
			rows = append(rows, []string{t.Name, strconv.Itoa(t.Frequency), strconv.Itoa(t.Relevance), strconv.Itoa(t.PageCount)})
		}
		rows = append(rows, []string{})
	}

	if sections.Entities {
		rows = append(rows, []string{"Entities"}, []string{"Name", "Category", "Count", "Confidence"})
		for _, e := range doc.Entities {
			rows = append(rows, []string{e.Name, string(e.Category), strconv.Itoa(e.Count), strconv.FormatFloat(e.Confidence, 'f', 2, 64)})
		}
		rows = append(rows, []string{})
	}

	if sections.SEOMetrics && doc.SEOMetrics != nil {
		rows = append(rows, []string{"SEO Metrics"}, []string{"Score", "Pages", "Issues"})
		rows = append(rows, []string{
			strconv.Itoa(doc.SEOMetrics.Score),
			strconv.Itoa(doc.SEOMetrics.PageCount),
			strconv.Itoa(len(doc.SEOMetrics.Issues)),
		})
		rows = append(rows, []string{})
	}

	if sections.URLSuggestions {
		rows = append(rows, []string{"URL Suggestions"})
		for _, u := range doc.URLSuggestions {
			rows = append(rows, []string{u})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
