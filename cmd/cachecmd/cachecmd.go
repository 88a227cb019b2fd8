// Package cachecmd implements the cache command group: inspecting and
// clearing the record cache file.
package cachecmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/wikiquery/internal/cache"
	"github.com/jonesrussell/wikiquery/internal/config"
	"github.com/jonesrussell/wikiquery/internal/logger"
)

// DepsFunc supplies configuration and logging to the command.
type DepsFunc func() (*config.Config, logger.Interface, error)

// Command returns the cache command group.
func Command(deps DepsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the record cache file",
	}

	cmd.AddCommand(listCommand(deps))
	cmd.AddCommand(infoCommand(deps))
	cmd.AddCommand(clearCommand(deps))
	return cmd
}

// openStore loads the cache store from the configured file.
func openStore(deps DepsFunc) (*cache.Store, error) {
	cfg, _, err := deps()
	if err != nil {
		return nil, err
	}

	store := cache.New(cfg.CacheFile)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading cache: %w", err)
	}
	return store, nil
}

// listCommand lists cached terms and their resolved pages.
func listCommand(deps DepsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached terms",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openStore(deps)
			if err != nil {
				return err
			}

			if store.Len() == 0 {
				fmt.Printf("Cache is empty (%s)\n", store.Path())
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Term", "Resolved Title", "Fields", "Fetched At"})
			for _, term := range store.Terms() {
				record, _ := store.Get(term)
				t.AppendRow(table.Row{
					term.String(),
					record.Title,
					len(record.Fields),
					record.FetchedAt.Format("2006-01-02 15:04"),
				})
			}
			t.Render()
			return nil
		},
	}
}

// infoCommand prints summary information about the cache file.
func infoCommand(deps DepsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache file location and size",
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := openStore(deps)
			if err != nil {
				return err
			}

			fmt.Printf("File:    %s\n", store.Path())
			fmt.Printf("Records: %d\n", store.Len())

			if stat, statErr := os.Stat(store.Path()); statErr == nil {
				fmt.Printf("Size:    %d bytes\n", stat.Size())
			} else {
				fmt.Println("Size:    (file not yet written)")
			}
			return nil
		},
	}
}

// clearCommand deletes the cache file. Deleting the backing file is the only
// supported way to clear the cache, and it requires explicit confirmation.
func clearCommand(deps DepsFunc) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the cache file",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := deps()
			if err != nil {
				return err
			}

			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", cfg.CacheFile)
			}

			if err := os.Remove(cfg.CacheFile); err != nil {
				if os.IsNotExist(err) {
					fmt.Printf("Cache file %s does not exist\n", cfg.CacheFile)
					return nil
				}
				return fmt.Errorf("deleting cache file: %w", err)
			}

			log.Info("Cache file deleted", "path", cfg.CacheFile)
			fmt.Printf("Deleted %s\n", cfg.CacheFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
