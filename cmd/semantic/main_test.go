package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/semantic/export"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/models"
	"github.com/seo-optimizer/semantic/stats"
)

const sampleText = "Our digital marketing agency builds SEO strategy for brands. " +
	"Marketing campaigns and content marketing drive search traffic. " +
	"Sarah Johnson joined Google Inc. to lead marketing analytics."

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "semantic version "+version+"\n", out)
}

func TestAnalyzeTextAsJSON(t *testing.T) {
	out, _, err := execute(t, "analyze", "--mode", "text", "--format", "json", sampleText)
	require.NoError(t, err)

	var doc struct {
		Metadata struct {
			URL string `json:"url"`
		} `json:"metadata"`
		Topics   []models.ConsolidatedTopic `json:"topics"`
		Entities []models.MergedEntity      `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Direct Content Analysis", doc.Metadata.URL)
	assert.NotEmpty(t, doc.Topics)
	assert.NotEmpty(t, doc.Entities)
}

func TestAnalyzeTextAsTables(t *testing.T) {
	out, _, err := execute(t, "analyze", "-m", "text", sampleText)
	require.NoError(t, err)

	assert.Contains(t, out, "Direct Content Analysis")
	assert.Contains(t, out, "Niche: Marketing")
	assert.Contains(t, out, "Topics")
	assert.Contains(t, out, "Google Inc.")
	assert.Contains(t, out, "/content-analysis")
}

func TestAnalyzeErrors(t *testing.T) {
	_, _, err := execute(t, "analyze", "not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid URL")

	_, _, err = execute(t, "analyze", "-m", "text", "--format", "xml", sampleText)
	require.Error(t, err)

	_, _, err = execute(t, "analyze")
	require.Error(t, err)
}

func TestParseSections(t *testing.T) {
	assert.Equal(t, export.AllSections(), parseSections(nil))
	assert.Equal(t, export.Sections{Topics: true, URLSuggestions: true}, parseSections([]string{"Topics", " urls"}))
	assert.Equal(t, export.Sections{}, parseSections([]string{"unknown"}))
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "stats", "--data-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "No statistics recorded yet\n", out)

	s, err := stats.NewStorage(dir, logging.NewNop())
	require.NoError(t, err)
	s.CrawlCompleted(4, 1, false)
	s.Increment(stats.Delta{Analyses: 1, CacheMisses: 1})
	require.NoError(t, s.Close())

	out, _, err = execute(t, "stats", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Statistics")
	assert.Contains(t, out, time.Now().Format("2006-01"))
	assert.Contains(t, out, "Total")
}
