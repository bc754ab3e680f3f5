package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seo-optimizer/semantic/fetcher"
	"github.com/seo-optimizer/semantic/models"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_PAGES", "")
	t.Setenv("BATCH_SIZE", "")

	cfg := FromEnv()
	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, models.MaxPages, cfg.MaxPages)
	assert.Equal(t, models.DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
}

func TestFromEnvClampsCrawlLimits(t *testing.T) {
	t.Setenv("MAX_PAGES", "100")
	t.Setenv("BATCH_SIZE", "12")
	t.Setenv("BATCH_DELAY", "50ms")

	cfg := FromEnv()
	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, 3, cfg.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.BatchDelay)
}

func TestDefaultFetchChainHasRelay(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, fetcher.DefaultProxyURL, cfg.FetchProxyURL)
	assert.Equal(t, []string{"proxy", "direct"},
		fetcher.NewDefault(cfg.FetchProxyURL, cfg.FetchTimeout, cfg.UserAgent).Strategies())

	t.Setenv("FETCH_PROXY_URL", fetcher.NoProxy)
	cfg = FromEnv()
	assert.Equal(t, []string{"direct"},
		fetcher.NewDefault(cfg.FetchProxyURL, cfg.FetchTimeout, cfg.UserAgent).Strategies())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MAX_PAGES", "5")
	t.Setenv("FETCH_PROXY_URL", "https://proxy.example/get?url=")
	t.Setenv("RATE_LIMIT_RPS", "0.5")

	cfg := FromEnv()
	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, "https://proxy.example/get?url=", cfg.FetchProxyURL)
	assert.InDelta(t, 0.5, cfg.RateLimitRPS, 0.0001)
}

func TestCacheAndStoreSettings(t *testing.T) {
	t.Setenv("CACHE_TTL", "0")
	t.Setenv("STORE_BACKEND", "postgres")

	cfg := FromEnv()
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 100, cfg.CacheSize)

	t.Setenv("CACHE_TTL", "")
	t.Setenv("STORE_BACKEND", "file")
	cfg = FromEnv()
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, StoreFile, cfg.StoreBackend)
}
