package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/seo-optimizer/semantic/models"
)

var exportedAt = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func sampleAnalysis() models.Analysis {
	return models.Analysis{
		ID:        "a1",
		URL:       "https://example.com/",
		Mode:      models.ModeURL,
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Topics: []models.ConsolidatedTopic{
			{Topic: models.Topic{Name: "Digital Marketing", Frequency: 12, Relevance: 88}, PageCount: 2, CrossPageRelevance: 98},
			{Topic: models.Topic{Name: "SEO, Search", Frequency: 4, Relevance: 60}, PageCount: 1, CrossPageRelevance: 60},
		},
		Entities: []models.MergedEntity{
			{Name: "Google Inc.", Category: models.CategoryOrganizations, Count: 3, Confidence: 0.9, Pages: []string{"https://example.com/"}},
		},
		SEOMetrics: models.SiteSEOMetrics{
			Score:     72,
			PageCount: 2,
			PageTypes: map[models.PageType]int{models.PageTypeHome: 1, models.PageTypeBlog: 1},
			Issues:    []string{"Missing canonical URL"},
		},
		URLSuggestions: []string{"digital-marketing", "blog/seo-tips"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{"text", FormatText, false},
		{"txt", FormatText, false},
		{"yml", FormatYAML, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleAnalysis(), FormatJSON, AllSections(), exportedAt))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "topics")
	assert.Contains(t, doc, "entities")
	assert.Contains(t, doc, "seoMetrics")
	assert.Contains(t, doc, "urlSuggestions")

	meta := doc["metadata"].(map[string]interface{})
	assert.Equal(t, "https://example.com/", meta["url"])
	assert.Equal(t, "2025-06-01T10:30:00Z", meta["exportedAt"])
}

func TestJSONExportHonorsSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleAnalysis(), FormatJSON, Sections{URLSuggestions: true}, exportedAt))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.NotContains(t, doc, "topics")
	assert.NotContains(t, doc, "seoMetrics")
	assert.Contains(t, doc, "urlSuggestions")
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleAnalysis(), FormatCSV, AllSections(), exportedAt))

	want := strings.Join([]string{
		"Topics",
		"Name,Frequency,Relevance,Pages",
		"Digital Marketing,12,88,2",
		`"SEO, Search",4,60,1`,
		"",
		"Entities",
		"Name,Category,Count,Confidence",
		"Google Inc.,organizations,3,0.90",
		"",
		"SEO Metrics",
		"Score,Pages,Issues",
		"72,2,1",
		"",
		"URL Suggestions",
		"digital-marketing",
		"blog/seo-tips",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestTextExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleAnalysis(), FormatText, AllSections(), exportedAt))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "SEO Analysis Report\nURL: https://example.com/\n"))
	assert.Contains(t, out, "TOPICS (2)")
	assert.Contains(t, out, "• Digital Marketing (12 mentions, 88% relevance)")
	assert.Contains(t, out, "• Google Inc. [organizations] x3")
	assert.Contains(t, out, "Overall Score: 72/100")
	assert.Contains(t, out, "Page Types: blog=1, home=1")
	assert.Contains(t, out, "! Missing canonical URL")
	assert.Contains(t, out, "• /blog/seo-tips/")
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleAnalysis(), FormatYAML, AllSections(), exportedAt))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "urlSuggestions")

	topics := doc["topics"].([]interface{})
	first := topics[0].(map[string]interface{})
	assert.Equal(t, "Digital Marketing", first["name"])
	assert.Equal(t, 98, first["crossPageRelevance"])
}

func TestFilenameAndContentType(t *testing.T) {
	assert.Equal(t, "seo-analysis-1748773800000.csv", Filename(FormatCSV, exportedAt))
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, sampleAnalysis(), Format("pdf"), AllSections(), exportedAt))
}
