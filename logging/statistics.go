package logging

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents usage of the analysis API
type Statistics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"`   // IP -> Last Visit Time
	AnalysisRequests int                  `json:"analysisRequests"` // Total number of analysis requests
	ErrorCount       int                  `json:"errorCount"`       // Number of failed analyses
	ModeCounts       map[string]int       `json:"modeCounts"`       // url/text -> Count
	PopularDomains   map[string]int       `json:"popularDomains"`   // Host -> Count
	AverageLoadTime  float64              `json:"averageLoadTime"`  // Average analysis time in milliseconds
	TotalLoadTime    float64              `json:"-"`
	RequestCount     int                  `json:"-"`
	LastPersisted    time.Time            `json:"lastPersisted"`
	path             string
	mutex            sync.RWMutex
}

// NewStatistics creates statistics backed by the JSON file at path.
// An empty path keeps everything in memory.
func NewStatistics(path string) *Statistics {
	s := &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		ModeCounts:     make(map[string]int),
		PopularDomains: make(map[string]int),
		LastPersisted:  time.Now(),
		path:           path,
	}
	if err := s.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Could not load existing statistics: %v\n", err)
	}
	return s
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// domainOf reduces an analyzed input to its host, skipping local and API targets
func domainOf(input string) string {
	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return ""
	}
	if strings.Contains(u.Host, "localhost") ||
		strings.Contains(u.Host, "127.0.0.1") ||
		strings.Contains(strings.ToLower(u.Path), "/api/") {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// TrackAnalysis records one analysis request
func (s *Statistics) TrackAnalysis(input, mode string, loadTime float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRequests++
	if mode != "" {
		s.ModeCounts[mode]++
	}
	if domain := domainOf(input); domain != "" {
		s.PopularDomains[domain]++
	}
	if hasError {
		s.ErrorCount++
	}

	s.TotalLoadTime += loadTime
	s.RequestCount++
	s.AverageLoadTime = s.TotalLoadTime / float64(s.RequestCount)
}

// TotalRequests returns the number of tracked analysis requests
func (s *Statistics) TotalRequests() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.AnalysisRequests
}

func (s *Statistics) uniqueVisitorsLocked() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.uniqueVisitorsLocked()
}

func (s *Statistics) popularDomainsLocked(n int) []string {
	domains := make([]string, 0, len(s.PopularDomains))
	for d := range s.PopularDomains {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool {
		ci, cj := s.PopularDomains[domains[i]], s.PopularDomains[domains[j]]
		if ci == cj {
			return domains[i] < domains[j]
		}
		return ci > cj
	})
	if len(domains) > n {
		domains = domains[:n]
	}
	return domains
}

// GetPopularDomains returns the top N most analyzed domains, most frequent first
func (s *Statistics) GetPopularDomains(n int) []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.popularDomainsLocked(n)
}

func (s *Statistics) errorRateLocked() float64 {
	if s.AnalysisRequests == 0 {
		return 0
	}
	return (float64(s.ErrorCount) / float64(s.AnalysisRequests)) * 100
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.errorRateLocked()
}

// Save persists the statistics to the configured file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.path == "" {
		return nil
	}
	s.LastPersisted = time.Now()

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("could not create statistics file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %w", err)
	}
	return nil
}

// Load reads the statistics from the configured file
func (s *Statistics) Load() error {
	if s.path == "" {
		return nil
	}
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %w", err)
	}
	defer file.Close()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := json.NewDecoder(file).Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %w", err)
	}
	return nil
}

// GetStatistics returns a snapshot of the current statistics. Domain
// popularity is only exposed in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsLocked(),
		"totalRequests":     s.AnalysisRequests,
		"errorRate":         s.errorRateLocked(),
		"averageLoadTime":   s.AverageLoadTime,
		"modes":             copyCounts(s.ModeCounts),
	}
	if os.Getenv(ENV_DEV_MODE) == "true" {
		out["popularDomains"] = s.popularDomainsLocked(5)
	}
	return out
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
