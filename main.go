package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seo-optimizer/semantic/analyzer"
	"github.com/seo-optimizer/semantic/api"
	"github.com/seo-optimizer/semantic/config"
	"github.com/seo-optimizer/semantic/crawler"
	"github.com/seo-optimizer/semantic/extractor"
	"github.com/seo-optimizer/semantic/fetcher"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/metrics"
	"github.com/seo-optimizer/semantic/middleware"
	"github.com/seo-optimizer/semantic/stats"
	"github.com/seo-optimizer/semantic/store"
)

const (
	maintenanceInterval = time.Hour
	shutdownTimeout     = 10 * time.Second
	usageFile           = "usage.json"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("failed to create logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	os.Exit(finish(logger, run(cfg, logger)))
}

// finish logs the error run returned, flushes the logger and returns the
// process exit code
func finish(logger logging.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("server stopped", logging.Err(err))
		code = 1
	}
	logger.Sync()
	return code
}

func run(cfg config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	statsStorage, err := stats.NewStorage(cfg.DataDir, logger.With(logging.String("component", "stats")))
	if err != nil {
		return err
	}
	defer func() {
		if err := statsStorage.Close(); err != nil {
			logger.Warn("flush stats", logging.Err(err))
		}
	}()

	analyses, err := newStore(cfg, logger)
	if err != nil {
		return err
	}

	f := fetcher.NewDefault(cfg.FetchProxyURL, cfg.FetchTimeout, cfg.UserAgent,
		fetcher.WithLogger(logger.With(logging.String("component", "fetcher"))),
		fetcher.WithObserver(m))
	c := crawler.New(f,
		crawler.WithConfig(crawler.Config{MaxPages: cfg.MaxPages, BatchSize: cfg.BatchSize, BatchDelay: cfg.BatchDelay}),
		crawler.WithExtractor(extractor.New(logger, true)),
		crawler.WithLogger(logger.With(logging.String("component", "crawler"))),
		crawler.WithObserver(m))
	a := analyzer.New(c,
		analyzer.WithLogger(logger.With(logging.String("component", "analyzer"))),
		analyzer.WithStats(statsStorage),
		analyzer.WithMetrics(m),
		analyzer.WithCache(cfg.CacheTTL, cfg.CacheSize))
	defer a.Close()

	usage := logging.NewStatistics(filepath.Join(cfg.DataDir, usageFile))
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := api.NewRouter(api.Deps{
		Analyzer:    a,
		Store:       analyses,
		Statistics:  usage,
		RateLimiter: limiter,
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:      logger.With(logging.String("component", "api")),
	})

	go maintain(ctx, limiter, statsStorage, cfg.RetainMonths)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", logging.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := usage.Save(); err != nil {
		logger.Warn("save usage statistics", logging.Err(err))
	}
	return nil
}

func newStore(cfg config.Config, logger logging.Logger) (store.AnalysisStore, error) {
	if cfg.StoreBackend == config.StoreFile {
		fs, err := store.NewFileStore(cfg.DataDir, logger.With(logging.String("component", "store")))
		if err != nil {
			return nil, err
		}
		return fs, nil
	}
	return store.NewMemoryStore(), nil
}

// maintain drops idle rate limiters and old monthly counters
func maintain(ctx context.Context, limiter *middleware.RateLimiter, s *stats.Storage, retainMonths int) {
	ticker := time.NewTicker(maintenanceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Cleanup()
			s.Cleanup(retainMonths)
		}
	}
}
