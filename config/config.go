// Package config loads runtime settings from .env files and the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/seo-optimizer/semantic/fetcher"
	"github.com/seo-optimizer/semantic/models"
)

// Config holds every runtime setting of the service and CLI
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	DataDir        string
	DevMode        bool
	MaxPages       int
	BatchSize      int
	BatchDelay     time.Duration
	FetchTimeout   time.Duration
	FetchProxyURL  string
	UserAgent      string
	RateLimitRPS   float64
	RateLimitBurst int

	// CacheTTL of zero disables the crawl cache
	CacheTTL     time.Duration
	CacheSize    int
	StoreBackend string
	RetainMonths int
}

const (
	defaultPort      = "8082"
	defaultGinMode   = "release"
	defaultLogLevel  = "info"
	defaultDataDir   = "./data"
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "SemanticAnalyzer/1.0"
	defaultRPS       = 2
	defaultBurst     = 5
	defaultCacheTTL  = 30 * time.Minute
	defaultCacheSize = 100
	defaultRetain    = 12

	// StoreMemory keeps analyses in process memory only
	StoreMemory = "memory"
	// StoreFile snapshots analyses to DATA_DIR/analyses.json
	StoreFile = "file"
)

// LoadEnv loads .env.development first, then .env. Missing files are not an error.
func LoadEnv() {
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

// Load reads .env files and then builds a Config from the environment
func Load() Config {
	LoadEnv()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() Config {
	cfg := Config{
		Port:           getString("PORT", defaultPort),
		GinMode:        getString("GIN_MODE", defaultGinMode),
		LogLevel:       getString("LOG_LEVEL", defaultLogLevel),
		DataDir:        getString("DATA_DIR", defaultDataDir),
		DevMode:        os.Getenv("DEV_MODE") == "true",
		MaxPages:       getInt("MAX_PAGES", models.MaxPages),
		BatchSize:      getInt("BATCH_SIZE", models.DefaultBatchSize),
		BatchDelay:     getDuration("BATCH_DELAY", models.BatchDelay),
		FetchTimeout:   getDuration("FETCH_TIMEOUT", defaultTimeout),
		FetchProxyURL:  getString("FETCH_PROXY_URL", fetcher.DefaultProxyURL),
		UserAgent:      getString("USER_AGENT", defaultUserAgent),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", defaultRPS),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", defaultBurst),
		CacheTTL:       getDuration("CACHE_TTL", defaultCacheTTL),
		CacheSize:      getInt("CACHE_SIZE", defaultCacheSize),
		StoreBackend:   getString("STORE_BACKEND", StoreMemory),
		RetainMonths:   getInt("STATS_RETAIN_MONTHS", defaultRetain),
	}
	return cfg.WithDefaults()
}

// WithDefaults clamps crawl limits and fills zero values
func (c Config) WithDefaults() Config {
	if c.MaxPages <= 0 || c.MaxPages > models.MaxPages {
		c.MaxPages = models.MaxPages
	}
	if c.BatchSize <= 0 || c.BatchSize > models.DefaultBatchSize {
		c.BatchSize = models.DefaultBatchSize
	}
	if c.BatchDelay < 0 {
		c.BatchDelay = models.BatchDelay
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = defaultTimeout
	}
	if c.FetchProxyURL == "" {
		c.FetchProxyURL = fetcher.DefaultProxyURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.GinMode == "" {
		c.GinMode = defaultGinMode
	}
	if c.RateLimitRPS <= 0 {
		c.RateLimitRPS = defaultRPS
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = defaultBurst
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.CacheSize <= 0 {
		c.CacheSize = defaultCacheSize
	}
	if c.StoreBackend != StoreFile {
		c.StoreBackend = StoreMemory
	}
	if c.RetainMonths < 0 {
		c.RetainMonths = defaultRetain
	}
	return c
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
