package fieldspecs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/wikiquery/internal/domain"
	"github.com/jonesrussell/wikiquery/internal/fieldspecs"
)

const catalogYAML = `specsets:
  presidents:
    - name: birth_date
      source: infobox
      key: Born
      kind: date
    - name: term_end
      source: infobox
      key: In office
      kind: date
      index: 1
  cities:
    - name: population
      source: infobox
      key: Population
      kind: number
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "specs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	catalog, err := fieldspecs.LoadFile(writeCatalog(t, catalogYAML))
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	presidents := catalog["presidents"]
	require.Len(t, presidents, 2)
	require.Equal(t, "birth_date", presidents[0].Name)
	require.Equal(t, domain.SourceInfobox, presidents[0].Source)
	require.Equal(t, domain.KindDate, presidents[0].Kind)
	require.Equal(t, 1, presidents[1].Index)

	cities := catalog["cities"]
	require.Len(t, cities, 1)
	require.Equal(t, domain.KindNumber, cities[0].Kind)
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing specsets key",
			content: "presidents:\n  - name: birth_date\n",
		},
		{
			name:    "spec without name",
			content: "specsets:\n  bad:\n    - source: infobox\n      key: Born\n",
		},
		{
			name:    "infobox spec without key",
			content: "specsets:\n  bad:\n    - name: birth_date\n      source: infobox\n",
		},
		{
			name:    "unknown source",
			content: "specsets:\n  bad:\n    - name: x\n      source: sidebar\n",
		},
		{
			name:    "unknown kind",
			content: "specsets:\n  bad:\n    - name: x\n      source: summary\n      kind: timestamp\n",
		},
		{
			name:    "empty set",
			content: "specsets:\n  bad: []\n",
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for i := range tests {
		test := &tests[i]
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := fieldspecs.LoadFile(writeCatalog(t, test.content))
			require.Error(t, err)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := fieldspecs.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestPreset(t *testing.T) {
	t.Parallel()

	specs, ok := fieldspecs.Preset("presidents")
	require.True(t, ok)
	require.Len(t, specs, 4)
	for i := range specs {
		require.NoError(t, specs[i].Validate())
	}

	// Callers get a copy, not the shared slice.
	specs[0].Name = "mutated"
	fresh, ok := fieldspecs.Preset("presidents")
	require.True(t, ok)
	require.Equal(t, "birth_date", fresh[0].Name)

	_, ok = fieldspecs.Preset("unknown")
	require.False(t, ok)
}

func TestPresetNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"cities", "nations", "presidents"}, fieldspecs.PresetNames())
}
