// Package stats keeps monthly crawl counters in a JSON snapshot file.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/seo-optimizer/semantic/logging"
)

const (
	monthLayout   = "2006-01"
	fileName      = "stats.json"
	flushInterval = 5 * time.Minute
	writeDebounce = time.Minute
)

// MonthlyStats holds the counters for one calendar month
type MonthlyStats struct {
	PagesCrawled  int       `json:"pages_crawled"`
	FetchFailures int       `json:"fetch_failures"`
	Fallbacks     int       `json:"fallbacks"`
	Analyses      int       `json:"analyses"`
	CacheHits     int       `json:"cache_hits"`
	CacheMisses   int       `json:"cache_misses"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Delta is added to the current month by Increment. Zero fields are no-ops.
type Delta struct {
	PagesCrawled  int
	FetchFailures int
	Fallbacks     int
	Analyses      int
	CacheHits     int
	CacheMisses   int
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	saveMu      sync.Mutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	wg          sync.WaitGroup
	logger      logging.Logger
	now         func() time.Time
}

// NewStorage creates the data directory if needed, loads any existing
// snapshot and starts the background writer.
func NewStorage(dataDir string, logger logging.Logger) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, fileName),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		logger:      logger,
		now:         time.Now,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	s.wg.Add(1)
	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes to a temp file and renames it over the snapshot
func (s *Storage) save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) saveAndLog() {
	if err := s.save(); err != nil {
		s.logger.Warn("stats snapshot failed", logging.String("path", s.filePath), logging.Err(err))
	}
}

func (s *Storage) backgroundWriter() {
	defer s.wg.Done()
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveAndLog()
		case <-ticker.C:
			s.saveAndLog()
		case <-s.done:
			return
		}
	}
}

func (s *Storage) currentMonth() string {
	return s.now().Format(monthLayout)
}

// requestWrite signals the writer; a pending request absorbs new ones
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
	}
}

// Increment adds d to the current month's counters
func (s *Storage) Increment(d Delta) {
	month := s.currentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}

	stats.PagesCrawled += d.PagesCrawled
	stats.FetchFailures += d.FetchFailures
	stats.Fallbacks += d.Fallbacks
	stats.Analyses += d.Analyses
	stats.CacheHits += d.CacheHits
	stats.CacheMisses += d.CacheMisses
	stats.LastUpdated = s.now()

	if s.now().Sub(s.lastWrite) > writeDebounce {
		s.requestWrite()
		s.lastWrite = s.now()
	}
}

// CrawlCompleted records the page counts of one finished crawl
func (s *Storage) CrawlCompleted(pages, failures int, fallback bool) {
	d := Delta{PagesCrawled: pages, FetchFailures: failures}
	if fallback {
		d.Fallbacks = 1
	}
	s.Increment(d)
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := s.currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// Cleanup keeps the current month plus retainMonths previous months
func (s *Storage) Cleanup(retainMonths int) {
	if retainMonths < 0 {
		retainMonths = 0
	}
	now := s.now()
	keep := make(map[string]bool, retainMonths+1)
	for i := 0; i <= retainMonths; i++ {
		keep[now.AddDate(0, -i, 0).Format(monthLayout)] = true
	}

	s.mutex.Lock()
	removed := 0
	for key := range s.stats {
		if !keep[key] {
			delete(s.stats, key)
			removed++
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
	s.logger.Debug("stats cleanup",
		logging.Int("retain_months", retainMonths),
		logging.Int("removed", removed))
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns every month with statistics, newest first
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Close stops the background writer and flushes a final snapshot
func (s *Storage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		err = s.save()
	})
	return err
}
