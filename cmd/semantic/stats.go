package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/seo-optimizer/semantic/config"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/stats"
)

func newStatsCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly crawl statistics recorded by the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataDir == "" {
				dataDir = config.FromEnv().DataDir
			}
			s, err := stats.NewStorage(dataDir, logging.NewNop())
			if err != nil {
				return fmt.Errorf("open stats in %s: %w", dataDir, err)
			}
			defer s.Close()

			renderMonthlyStats(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory holding stats.json (default from DATA_DIR)")
	return cmd
}

func renderMonthlyStats(w io.Writer, s *stats.Storage) {
	months := s.GetAllMonths()
	if len(months) == 0 {
		fmt.Fprintln(w, "No statistics recorded yet")
		return
	}

	t := newTable(w, "Monthly Statistics")
	t.AppendHeader(table.Row{"Month", "Analyses", "Pages", "Failures", "Fallbacks", "Cache Hits", "Cache Misses"})
	cols := make([]table.ColumnConfig, 0, 6)
	for n := 2; n <= 7; n++ {
		cols = append(cols, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(cols)

	var total stats.MonthlyStats
	for _, month := range months {
		m, _ := s.GetMonthlyStats(month)
		t.AppendRow(table.Row{month, m.Analyses, m.PagesCrawled, m.FetchFailures, m.Fallbacks, m.CacheHits, m.CacheMisses})
		total.Analyses += m.Analyses
		total.PagesCrawled += m.PagesCrawled
		total.FetchFailures += m.FetchFailures
		total.Fallbacks += m.Fallbacks
		total.CacheHits += m.CacheHits
		total.CacheMisses += m.CacheMisses
	}
	t.AppendFooter(table.Row{"Total", total.Analyses, total.PagesCrawled, total.FetchFailures, total.Fallbacks, total.CacheHits, total.CacheMisses})
	t.Render()
}
