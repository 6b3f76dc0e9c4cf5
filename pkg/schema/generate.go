// Package schema generates JSON schemas from Go configuration types.
package schema

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
)

// ModulePath is the import path prefix shared by all reflected packages.
const ModulePath = "github.com/kdbg-dev/kdbg"

// Generator produces a JSON schema for a configuration type.
// Go comments from the listed packages become schema descriptions.
type Generator struct {
	v        any
	root     string
	packages []string
}

// NewGenerator creates a [Generator] for v. The packages are import paths
// whose Go comments should be included in the schema.
func NewGenerator(v any, packages ...string) *Generator {
	return &Generator{
		v: v,
		// Callers run from a package directory two levels below the
		// module root, via go:generate.
		root:     "../..",
		packages: packages,
	}
}

// Generate reflects the configuration type into an indented JSON schema.
func (g *Generator) Generate() ([]byte, error) {
	r := &jsonschema.Reflector{}

	for _, pkg := range g.packages {
		dir := filepath.Join(g.root, strings.TrimPrefix(pkg, ModulePath))

		err := r.AddGoComments(pkg, dir)
		if err != nil {
			return nil, fmt.Errorf("add go comments for %s: %w", pkg, err)
		}
	}

	jss := r.Reflect(g.v)

	b, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}
