package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/semantic/config"
)

const version = "1.0.0"

func newRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "semantic",
		Short:         "Semantic site analyzer",
		Long:          `Crawls a site (or reads text) and reports topics, entities, niche and SEO scores.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "semantic version %s\n", version)
		},
	})
	root.AddCommand(newAnalyzeCommand(&logLevel))
	root.AddCommand(newStatsCommand())
	return root
}
