// Package build orchestrates compilation: a collection phase that registers
// every attributed declaration reachable from the entry file, then a
// generation phase that produces one artifact per declaration of the entry
// file.
package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toanphambk/ts2scl/ast"
)

// Loader is the front-end boundary.  It resolves import specifiers to file
// paths and loads parsed, type-checked trees.
type Loader interface {
	// Resolve maps an import specifier, relative to the importing file, to a
	// loadable path.
	Resolve(fromPath, spec string) (string, error)

	// Load reads the tree of one source file.
	Load(path string) (*ast.File, error)
}

// FileLoader loads JSON-encoded trees from disk.  Import specifiers resolve
// relative to the importing file's directory.
type FileLoader struct{}

func (FileLoader) Resolve(fromPath, spec string) (string, error) {
	path := filepath.Join(filepath.Dir(fromPath), spec)
	if filepath.Ext(path) == "" {
		path += ".json"
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("unresolvable import `%s`: %w", spec, err)
	}

	return abs, nil
}

func (FileLoader) Load(path string) (*ast.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	file, err := ast.DecodeFile(data)
	if err != nil {
		return nil, fmt.Errorf("malformed source tree: %w", err)
	}

	file.Path = path
	return file, nil
}
