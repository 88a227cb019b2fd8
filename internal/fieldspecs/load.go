package fieldspecs

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jonesrussell/wikiquery/internal/domain"
)

// catalogKey is the top-level key a spec catalog file is nested under.
const catalogKey = "specsets"

// ErrNoSpecSets indicates a catalog file contained no spec sets.
var ErrNoSpecSets = errors.New("no spec sets found in catalog")

// LoadFile reads a YAML spec catalog from path. The file nests named spec
// sets under a top-level "specsets" key:
//
//	specsets:
//	  presidents:
//	    - name: birth_date
//	      source: infobox
//	      key: Born
//	      kind: date
//
// Every spec in the catalog is validated before the catalog is returned.
func LoadFile(path string) (map[string][]domain.FieldSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec catalog %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing spec catalog %s: %w", path, err)
	}

	catalog := make(map[string][]domain.FieldSpec)
	if err := mapstructure.Decode(raw[catalogKey], &catalog); err != nil {
		return nil, fmt.Errorf("decoding spec catalog %s: %w", path, err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: %s (expected sets under %q)", ErrNoSpecSets, path, catalogKey)
	}

	for setName, specs := range catalog {
		if len(specs) == 0 {
			return nil, fmt.Errorf("spec catalog %s: set %q is empty", path, setName)
		}
		for i := range specs {
			if err := specs[i].Validate(); err != nil {
				return nil, fmt.Errorf("spec catalog %s: set %q: %w", path, setName, err)
			}
		}
	}

	return catalog, nil
}
