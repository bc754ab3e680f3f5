package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/seo-optimizer/semantic/aggregate"
	"github.com/seo-optimizer/semantic/models"
)

const (
	maxTopicRows  = 15
	maxEntityRows = 20
)

// renderTables prints the analysis as a set of terminal tables
func renderTables(w io.Writer, a models.Analysis) {
	fmt.Fprintf(w, "%s\n", a.URL)
	fmt.Fprintf(w, "Niche: %s (score %d)   SEO score: %d/100   Pages: %d\n\n",
		a.DomainNiche.Primary, a.DomainNiche.Score, a.SEOMetrics.Score, len(a.Pages))

	renderTopics(w, a.Topics)
	renderEntities(w, a.Entities)
	if len(a.SemanticClusters) > 0 {
		renderClusters(w, a.SemanticClusters)
	}
	if len(a.Pages) > 1 || a.CrawlSummary != nil {
		renderPages(w, a.Pages)
	}
	renderSuggestions(w, a.URLSuggestions)

	if len(a.SEOMetrics.Issues) > 0 {
		fmt.Fprintln(w, "Issues:")
		for _, issue := range a.SEOMetrics.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle(title)
	return t
}

func renderTopics(w io.Writer, list []models.ConsolidatedTopic) {
	t := newTable(w, "Topics")
	t.AppendHeader(table.Row{"Topic", "Mentions", "Relevance", "Pages", "Subtopics"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 40},
	})
	for i, topic := range list {
		if i == maxTopicRows {
			break
		}
		subs := make([]string, 0, len(topic.Subtopics))
		for _, s := range topic.Subtopics {
			subs = append(subs, s.Name)
		}
		t.AppendRow(table.Row{topic.Name, topic.TotalMentions, topic.EffectiveRelevance(), topic.PageCount, strings.Join(subs, ", ")})
	}
	t.Render()
	fmt.Fprintln(w)
}

func renderEntities(w io.Writer, list []models.MergedEntity) {
	t := newTable(w, "Entities")
	t.AppendHeader(table.Row{"Name", "Category", "Count", "Confidence"})
	for i, e := range list {
		if i == maxEntityRows {
			break
		}
		t.AppendRow(table.Row{e.Name, e.Category, e.Count, fmt.Sprintf("%.2f", e.Confidence)})
	}
	t.Render()
	fmt.Fprintln(w)
}

func renderClusters(w io.Writer, list []models.SemanticCluster) {
	t := newTable(w, "Semantic Clusters")
	t.AppendHeader(table.Row{"Cluster", "Topics", "Mentions", "Avg Relevance", "Dominance"})
	for _, c := range list {
		t.AppendRow(table.Row{c.Name, len(c.Topics), c.TotalMentions, c.AvgRelevance, c.DominanceScore})
	}
	t.Render()
	fmt.Fprintln(w)
}

func renderPages(w io.Writer, pages []models.PageResult) {
	t := newTable(w, "Pages")
	t.AppendHeader(table.Row{"URL", "Type", "SEO", "Title"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 4, WidthMax: 40}})
	for _, p := range pages {
		t.AppendRow(table.Row{p.URL, p.SEOMetrics.PageType, p.SEOMetrics.Score, p.Content.Title})
	}
	t.Render()
	fmt.Fprintln(w)
}

func renderSuggestions(w io.Writer, urls []string) {
	byLabel := map[string][]string{}
	for _, u := range urls {
		label, _ := aggregate.CategorizeURL(u)
		byLabel[label] = append(byLabel[label], "/"+u)
	}
	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	t := newTable(w, "URL Suggestions")
	t.AppendHeader(table.Row{"Level", "Paths"})
	for _, l := range labels {
		t.AppendRow(table.Row{l, strings.Join(byLabel[l], "\n")})
	}
	t.Render()
	fmt.Fprintln(w)
}
