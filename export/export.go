// Package export renders an Analysis as JSON, CSV, a plain-text report or
// YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/seo-optimizer/semantic/models"
)

// Format is an export file format
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format
var Formats = []Format{FormatJSON, FormatCSV, FormatText, FormatYAML}

// ParseFormat accepts a format name case-insensitively; "text" and "yml"
// are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType is the MIME type served for f
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// Filename names an export file after its creation time
func Filename(f Format, exportedAt time.Time) string {
	return fmt.Sprintf("seo-analysis-%d.%s", exportedAt.UnixMilli(), f)
}

// Sections selects which parts of an Analysis are exported
type Sections struct {
	Topics         bool
	Entities       bool
	SEOMetrics     bool
	URLSuggestions bool
}

// AllSections exports everything
func AllSections() Sections {
	return Sections{Topics: true, Entities: true, SEOMetrics: true, URLSuggestions: true}
}

// Metadata identifies the exported analysis
type Metadata struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Timestamp  time.Time `json:"timestamp"`
	ExportedAt time.Time `json:"exportedAt"`
}

// Document is the exported subset of an Analysis
type Document struct {
	Topics         []models.ConsolidatedTopic `json:"topics,omitempty"`
	Entities       []models.MergedEntity      `json:"entities,omitempty"`
	SEOMetrics     *models.SiteSEOMetrics     `json:"seoMetrics,omitempty"`
	URLSuggestions []string                   `json:"urlSuggestions,omitempty"`
	Metadata       Metadata                   `json:"metadata"`
}

// Build selects the requested sections of a
func Build(a models.Analysis, sections Sections, exportedAt time.Time) Document {
	doc := Document{
		Metadata: Metadata{ID: a.ID, URL: a.URL, Timestamp: a.Timestamp, ExportedAt: exportedAt},
	}
	if sections.Topics {
		doc.Topics = a.Topics
	}
	if sections.Entities {
		doc.Entities = a.Entities
	}
	if sections.SEOMetrics {
		m := a.SEOMetrics
		doc.SEOMetrics = &m
	}
	if sections.URLSuggestions {
		doc.URLSuggestions = a.URLSuggestions
	}
	return doc
}

// Write renders the selected sections of a to w
func Write(w io.Writer, a models.Analysis, f Format, sections Sections, exportedAt time.Time) error {
	doc := Build(a, sections, exportedAt)
	switch f {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatCSV:
		return writeCSV(w, doc, sections)
	case FormatText:
		return writeText(w, doc, sections)
	case FormatYAML:
		return writeYAML(w, doc)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

func writeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
