// Package cmd implements the command-line interface for wikiquery.
// It provides the root command and subcommands for fetching records and
// managing the cache file.
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/wikiquery/cmd/cachecmd"
	"github.com/jonesrussell/wikiquery/cmd/fetch"
	"github.com/jonesrussell/wikiquery/internal/config"
	"github.com/jonesrussell/wikiquery/internal/logger"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	// rootCmd represents the root command for the wikiquery CLI.
	rootCmd = &cobra.Command{
		Use:   "wikiquery",
		Short: "Query and cache structured data from Wikipedia pages",
		Long: `wikiquery resolves search terms to Wikipedia pages, extracts the fields
a research module cares about, and caches the cleaned records so repeated
runs avoid redundant network calls.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wikiquery version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(fetch.Command(Deps))
	rootCmd.AddCommand(cachecmd.Command(Deps))
}

// Deps builds the configuration and logger shared by subcommands, honoring
// the global --config and --debug flags.
func Deps() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing configuration: %w", err)
	}

	if debug {
		cfg.Logging.Level = logger.DebugLevel
		cfg.Logging.Development = true
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, log, nil
}
