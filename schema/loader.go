package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultPattern matches schema definition files under a root.
const DefaultPattern = "**/*.yaml"

// Definition is the YAML shape of a schema declaration.
type Definition struct {
	Name       string      `yaml:"name"`
	Dimensions []string    `yaml:"dimensions"`
	Required   []string    `yaml:"required"`
	ValueRange *ValueRange `yaml:"value_range"`
	Inherits   string      `yaml:"inherits"`
}

// definitionFile is the top-level YAML document: a list of declarations
// under a "schemas" key.
type definitionFile struct {
	Schemas []Definition `yaml:"schemas"`
}

// Schema converts the declaration into a validated Schema.
func (d Definition) Schema() (*Schema, error) {
	opts := []Option{
		WithDimensions(d.Dimensions...),
		WithRequired(d.Required...),
	}
	if d.ValueRange != nil {
		opts = append(opts, WithValueRange(d.ValueRange.Low, d.ValueRange.High))
	}
	if d.Inherits != "" {
		opts = append(opts, WithInherits(d.Inherits))
	}
	return New(d.Name, opts...)
}

// LoadFile parses every schema declared in a YAML definition file.
func LoadFile(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	schemas := make([]*Schema, 0, len(file.Schemas))
	for _, def := range file.Schemas {
		s, err := def.Schema()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// LoadGlob loads schemas from every file under root matching a
// doublestar pattern (DefaultPattern when empty). Files load in sorted
// path order for deterministic results.
func LoadGlob(root, pattern string) ([]*Schema, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("bad schema file pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var schemas []*Schema
	for _, match := range matches {
		loaded, err := LoadFile(filepath.Join(root, filepath.FromSlash(match)))
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, loaded...)
	}
	return schemas, nil
}

// LoadDefinitions registers a batch of schemas, ordering registrations
// parent-before-child regardless of declaration order. It fails when the
// batch leaves schemas whose parents exist neither in the batch nor in
// the registry, or when the batch declares a parent cycle.
func (r *Registry) LoadDefinitions(schemas []*Schema) error {
	pending := schemas
	for len(pending) > 0 {
		progressed := false
		var deferred []*Schema
		for _, s := range pending {
			err := r.Register(s)
			if errors.Is(err, ErrParentNotRegistered) {
				deferred = append(deferred, s)
				continue
			}
			if err != nil {
				return err
			}
			progressed = true
		}
		if !progressed {
			names := make([]string, len(deferred))
			for i, s := range deferred {
				names[i] = s.Name
			}
			return fmt.Errorf("schema definitions have missing or cyclic parents: %s",
				strings.Join(names, ", "))
		}
		pending = deferred
	}
	return nil
}
