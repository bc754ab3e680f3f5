package analyzer

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/seo-optimizer/semantic/crawler"
)

const (
	defaultCacheTTL        = 30 * time.Minute
	defaultMaxCacheSize    = 100
	defaultCleanupInterval = 5 * time.Minute
)

// cacheEntry holds one crawl result with its creation time
type cacheEntry struct {
	result    *crawler.Result
	timestamp time.Time
}

// crawlCache keeps recent crawl results by seed URL. Fallback results are
// never cached.
type crawlCache struct {
	mutex   sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

func newCrawlCache(ttl time.Duration, maxSize int) *crawlCache {
	return &crawlCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// enabled is false when caching is switched off with a zero TTL
func (c *crawlCache) enabled() bool { return c.ttl > 0 }

func (c *crawlCache) get(seed string) (*crawler.Result, bool) {
	if !c.enabled() {
		return nil, false
	}
	key := generateCacheKey(seed)

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, found := c.entries[key]
	if !found || c.now().Sub(entry.timestamp) >= c.ttl {
		return nil, false
	}
	return entry.result, true
}

func (c *crawlCache) put(seed string, res *crawler.Result) {
	if !c.enabled() || res.Fallback() {
		return
	}
	c.mutex.Lock()
	c.entries[generateCacheKey(seed)] = cacheEntry{result: res, timestamp: c.now()}
	over := len(c.entries) > c.maxSize
	c.mutex.Unlock()

	if over {
		c.cleanup()
	}
}

func (c *crawlCache) len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// cleanup drops expired entries, then the oldest ones beyond maxSize
func (c *crawlCache) cleanup() {
	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, entry := range c.entries {
		if now.Sub(entry.timestamp) >= c.ttl {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxSize {
		return
	}
	type aged struct {
		key       string
		timestamp time.Time
	}
	entries := make([]aged, 0, len(c.entries))
	for key, entry := range c.entries {
		entries = append(entries, aged{key, entry.timestamp})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].timestamp.Before(entries[j].timestamp)
	})
	for i := 0; i < len(entries)-c.maxSize; i++ {
		delete(c.entries, entries[i].key)
	}
}

func (c *crawlCache) clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// periodicCleanup runs cleanup every interval until done is closed
func (c *crawlCache) periodicCleanup(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-done:
			return
		}
	}
}

// generateCacheKey ignores host case, fragments and a trailing slash
func generateCacheKey(seed string) string {
	key := seed
	if u, err := url.Parse(seed); err == nil {
		u.Host = strings.ToLower(u.Host)
		u.Fragment = ""
		key = u.String()
	}
	key = strings.TrimSuffix(key, "/")
	hash := md5.Sum([]byte(key))
	return hex.EncodeToString(hash[:])
}
