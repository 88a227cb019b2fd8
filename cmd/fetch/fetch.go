// Package fetch implements the fetch command: resolve a term through the
// lazy loader and render the resulting record.
package fetch

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/wikiquery/internal/cache"
	"github.com/jonesrussell/wikiquery/internal/config"
	"github.com/jonesrussell/wikiquery/internal/domain"
	"github.com/jonesrussell/wikiquery/internal/fieldspecs"
	"github.com/jonesrussell/wikiquery/internal/loader"
	"github.com/jonesrussell/wikiquery/internal/logger"
	"github.com/jonesrussell/wikiquery/internal/wiki"
)

// DepsFunc supplies configuration and logging to the command.
type DepsFunc func() (*config.Config, logger.Interface, error)

// Command returns the fetch command.
func Command(deps DepsFunc) *cobra.Command {
	var (
		term     string
		preset   string
		specFile string
		specSet  string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a record for a search term, using the cache when possible",
		Long: `Fetch resolves a search term to a page, extracts the requested fields,
and caches the cleaned record. A term already in the cache is returned
without any network access.

Examples:
  # Fetch presidential dates using the built-in preset
  wikiquery fetch -t "Abraham Lincoln" -p presidents

  # Fetch with a custom spec catalog
  wikiquery fetch -t "France" --specs ./specs.yaml --set nations`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := deps()
			if err != nil {
				return err
			}

			specs, err := resolveSpecs(preset, specFile, specSet)
			if err != nil {
				return err
			}

			store := cache.New(cfg.CacheFile)
			if err := store.Load(); err != nil {
				return fmt.Errorf("loading cache: %w", err)
			}

			fetcher := wiki.NewClient(cfg.Wiki, log)
			load := loader.New(store, fetcher, log)

			resolve := load.Load
			if noCache {
				resolve = load.Refresh
			}
			record, err := resolve(cmd.Context(), term, specs)
			if err != nil {
				return err
			}

			render(record)
			return nil
		},
	}

	cmd.Flags().StringVarP(&term, "term", "t", "", "Search term to resolve (required)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "",
		fmt.Sprintf("Built-in spec set (%s)", strings.Join(fieldspecs.PresetNames(), ", ")))
	cmd.Flags().StringVar(&specFile, "specs", "", "Path to a YAML spec catalog")
	cmd.Flags().StringVar(&specSet, "set", "", "Spec set name inside the catalog")
	cmd.Flags().BoolVar(&noCache, "no-cache", false,
		"Bypass the cache and fetch fresh, overwriting the stored record")

	if err := cmd.MarkFlagRequired("term"); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking term flag as required: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// resolveSpecs picks the field specs from a preset or a catalog file.
func resolveSpecs(preset, specFile, specSet string) ([]domain.FieldSpec, error) {
	switch {
	case preset != "" && specFile != "":
		return nil, fmt.Errorf("--preset and --specs are mutually exclusive")
	case preset != "":
		specs, ok := fieldspecs.Preset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %s)",
				preset, strings.Join(fieldspecs.PresetNames(), ", "))
		}
		return specs, nil
	case specFile != "":
		catalog, err := fieldspecs.LoadFile(specFile)
		if err != nil {
			return nil, err
		}
		if specSet == "" {
			return nil, fmt.Errorf("--set is required with --specs")
		}
		specs, ok := catalog[specSet]
		if !ok {
			return nil, fmt.Errorf("spec set %q not found in %s", specSet, specFile)
		}
		return specs, nil
	default:
		// No specs: the record still captures the infobox and summary.
		return nil, nil
	}
}

// render prints the record as a table.
func render(record domain.CleanRecord) {
	fmt.Printf("%s (%s)\n", record.Title, record.URL)
	if !record.ResolvedExact {
		fmt.Printf("Resolved from term %q (no exact title match)\n", record.Term)
	}

	if len(record.Fields) == 0 {
		fmt.Printf("No fields requested; %d infobox rows captured.\n", len(record.Infobox))
		return
	}

	names := make([]string, 0, len(record.Fields))
	for name := range record.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Field", "Value", "Parsed"})
	for _, name := range names {
		value := record.Fields[name]
		if !value.Found {
			t.AppendRow(table.Row{name, "(absent)", ""})
			continue
		}
		t.AppendRow(table.Row{name, value.Text, parsedColumn(value)})
	}
	t.Render()
}

// parsedColumn formats the typed value of a field, if any.
func parsedColumn(value domain.FieldValue) string {
	switch {
	case value.Date != "":
		return value.Date
	case value.Number != nil:
		return fmt.Sprintf("%g", *value.Number)
	default:
		return ""
	}
}
