// Package fieldspecs provides named field-spec sets for the cleaner: built-in
// presets for the bundled research modules and loading of user-supplied YAML
// catalogs.
package fieldspecs

import (
	"sort"

	"github.com/jonesrussell/wikiquery/internal/domain"
)

// presets are the spec sets the bundled research modules rely on.
var presets = map[string][]domain.FieldSpec{
	// Presidential biography pages: dates of life and office term from the
	// infobox. Term rows carry both dates ("March 4, 1861 - April 15, 1865"),
	// so term_end selects the second date match.
	"presidents": {
		{Name: "birth_date", Source: domain.SourceInfobox, Key: "Born", Kind: domain.KindDate},
		{Name: "death_date", Source: domain.SourceInfobox, Key: "Died", Kind: domain.KindDate},
		{Name: "term_start", Source: domain.SourceInfobox, Key: "In office", Kind: domain.KindDate},
		{Name: "term_end", Source: domain.SourceInfobox, Key: "In office", Kind: domain.KindDate, Index: 1},
	},
	// Nation pages: formation, capital, and population from the infobox.
	"nations": {
		{Name: "formation_year", Source: domain.SourceInfobox, Key: "Formation", Kind: domain.KindYear},
		{Name: "capital", Source: domain.SourceInfobox, Key: "Capital", Kind: domain.KindText},
		{Name: "population", Source: domain.SourceInfobox, Key: "Population", Kind: domain.KindNumber},
	},
	// City pages: population and area from the infobox.
	"cities": {
		{Name: "population", Source: domain.SourceInfobox, Key: "Population", Kind: domain.KindNumber},
		{Name: "area", Source: domain.SourceInfobox, Key: "Area", Kind: domain.KindNumber},
	},
}

// Preset returns the named built-in spec set.
func Preset(name string) ([]domain.FieldSpec, bool) {
	specs, ok := presets[name]
	if !ok {
		return nil, false
	}
	out := make([]domain.FieldSpec, len(specs))
	copy(out, specs)
	return out, true
}

// PresetNames returns the available preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
