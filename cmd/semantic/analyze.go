package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/semantic/analyzer"
	"github.com/seo-optimizer/semantic/config"
	"github.com/seo-optimizer/semantic/crawler"
	"github.com/seo-optimizer/semantic/export"
	"github.com/seo-optimizer/semantic/extractor"
	"github.com/seo-optimizer/semantic/fetcher"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/models"
)

// formatTable is the default terminal rendering
const formatTable = "table"

type analyzeOptions struct {
	mode     string
	format   string
	sections []string
	maxPages int
	proxy    string
	timeout  time.Duration
	strict   bool
	quiet    bool
}

func newAnalyzeCommand(logLevel *string) *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <url | text>",
		Short: "Analyze a website or a block of text",
		Example: `  semantic analyze https://example.com
  semantic analyze --mode text "Our agency builds SEO strategy for brands."
  semantic analyze https://example.com --format csv > report.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(*logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runAnalyze(cmd, strings.Join(args, " "), opts, logger)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.mode, "mode", "m", string(models.ModeURL), "input mode: url or text")
	f.StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json, csv, txt or yaml")
	f.StringSliceVar(&opts.sections, "sections", nil, "export sections: topics, entities, seo, urls (default all)")
	f.IntVar(&opts.maxPages, "max-pages", 0, "maximum pages to crawl (default from MAX_PAGES, at most 25)")
	f.StringVar(&opts.proxy, "proxy", "", "fetch relay endpoint tried before direct requests, or \"off\" (default from FETCH_PROXY_URL)")
	f.DurationVar(&opts.timeout, "timeout", 0, "per-request fetch timeout (default from FETCH_TIMEOUT)")
	f.BoolVar(&opts.strict, "strict", false, "fail when the start page cannot be fetched instead of reporting a placeholder")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress crawl progress")
	return cmd
}

func runAnalyze(cmd *cobra.Command, input string, opts analyzeOptions, logger logging.Logger) error {
	cfg := config.FromEnv()
	if opts.maxPages > 0 {
		cfg.MaxPages = opts.maxPages
	}
	if opts.proxy != "" {
		cfg.FetchProxyURL = opts.proxy
	}
	if opts.timeout > 0 {
		cfg.FetchTimeout = opts.timeout
	}
	cfg = cfg.WithDefaults()

	f := fetcher.NewDefault(cfg.FetchProxyURL, cfg.FetchTimeout, cfg.UserAgent, fetcher.WithLogger(logger))
	c := crawler.New(f,
		crawler.WithConfig(crawler.Config{MaxPages: cfg.MaxPages, BatchSize: cfg.BatchSize, BatchDelay: cfg.BatchDelay}),
		crawler.WithExtractor(extractor.New(logger, true)),
		crawler.WithLogger(logger))
	a := analyzer.New(c, analyzer.WithLogger(logger), analyzer.WithCache(0, 0), analyzer.WithStrict(opts.strict))
	defer a.Close()

	var progress crawler.ProgressFunc
	if !opts.quiet {
		progress = progressPrinter(cmd.ErrOrStderr())
	}

	analysis, err := a.AnalyzeWithProgress(cmd.Context(), input, models.Mode(opts.mode), progress)
	if err != nil {
		return fmt.Errorf("%s", analyzer.UserMessage(err))
	}
	return render(cmd.OutOrStdout(), analysis, opts.format, opts.sections)
}

func progressPrinter(w io.Writer) crawler.ProgressFunc {
	return func(p crawler.Progress) {
		if p.Status == crawler.ProgressComplete {
			fmt.Fprintf(w, "crawled %d page(s)\n", p.Current)
			return
		}
		fmt.Fprintf(w, "[%d/%d] %s\n", p.Current, p.Total, p.URL)
	}
}

func render(w io.Writer, a models.Analysis, format string, sections []string) error {
	if strings.EqualFold(format, formatTable) {
		renderTables(w, a)
		return nil
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(w, a, f, parseSections(sections), time.Now())
}

func parseSections(names []string) export.Sections {
	if len(names) == 0 {
		return export.AllSections()
	}
	var s export.Sections
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "topics":
			s.Topics = true
		case "entities":
			s.Entities = true
		case "seo", "seometrics":
			s.SEOMetrics = true
		case "urls", "urlsuggestions":
			s.URLSuggestions = true
		}
	}
	return s
}
