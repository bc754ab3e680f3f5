package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAnalysis(t *testing.T) {
	s := NewStatistics("")

	s.TrackAnalysis("https://www.Example.com/about", "url", 100, false)
	s.TrackAnalysis("https://example.com/", "url", 300, true)
	s.TrackAnalysis("https://other.org/", "url", 200, false)
	s.TrackAnalysis("Direct Content Analysis", "text", 50, false)
	s.TrackAnalysis("http://localhost:8080/", "url", 50, false)

	assert.Equal(t, 5, s.TotalRequests())
	assert.InDelta(t, 20.0, s.GetErrorRate(), 0.001)
	assert.Equal(t, []string{"example.com", "other.org"}, s.GetPopularDomains(5))
	assert.Equal(t, []string{"example.com"}, s.GetPopularDomains(1))

	snap := s.GetStatistics()
	assert.Equal(t, 5, snap["totalRequests"])
	assert.InDelta(t, 140.0, snap["averageLoadTime"], 0.001)
	assert.Equal(t, map[string]int{"url": 4, "text": 1}, snap["modes"])
	assert.NotContains(t, snap, "popularDomains")
}

func TestPopularDomainsInDevMode(t *testing.T) {
	t.Setenv(ENV_DEV_MODE, "true")
	s := NewStatistics("")
	s.TrackAnalysis("https://example.com/", "url", 10, false)

	assert.Equal(t, []string{"example.com"}, s.GetStatistics()["popularDomains"])
}

func TestUniqueVisitors(t *testing.T) {
	s := NewStatistics("")
	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.2")
	assert.Equal(t, 2, s.GetUniqueVisitorsCount())
}

func TestStatisticsPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	s := NewStatistics(path)
	s.TrackAnalysis("https://example.com/", "url", 10, false)
	require.NoError(t, s.Save())

	reloaded := NewStatistics(path)
	assert.Equal(t, 1, reloaded.TotalRequests())
	assert.Equal(t, []string{"example.com"}, reloaded.GetPopularDomains(3))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "info", parseLevel("bogus").String())

	l, err := New("error")
	require.NoError(t, err)
	assert.NotNil(t, l.With(String("component", "test")))
}
