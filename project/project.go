// Package project loads the compiler's project file: the entry file, output
// layout, and the block-option defaults that apply when a declaration does
// not pin an option itself.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/toanphambk/ts2scl/meta"
)

const (
	// ProjectFileName is the fixed name of the project file.
	ProjectFileName = "scl.toml"

	// CompilerVersion is the current compiler version.
	CompilerVersion = "0.1.0"
)

// tomlProjectFile represents the project file as it is encoded in TOML.
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

type tomlProject struct {
	Name       string             `toml:"name"`
	Entry      string             `toml:"entry"`
	OutputDir  string             `toml:"output-dir,omitempty"`
	TIAVersion string             `toml:"tia-version,omitempty"`
	LogLevel   string             `toml:"log-level,omitempty"`
	CRLF       *bool              `toml:"crlf,omitempty"`
	Blocks     *tomlBlockDefaults `toml:"block-defaults"`
}

type tomlBlockDefaults struct {
	OptimizedAccess *bool  `toml:"optimized-access"`
	Version         string `toml:"version"`
	WebVisible      *bool  `toml:"web-visible"`
	OpcVisible      *bool  `toml:"opc-visible"`
}

// Project is the loaded, validated project configuration.
type Project struct {
	// Root is the directory enclosing the project file.
	Root string

	Name       string
	EntryPath  string
	OutputDir  string
	TIAVersion string
	LogLevel   string

	// CRLF selects carriage-return line endings on written artifacts, which
	// the PLC IDE's source import expects.
	CRLF bool

	// Defaults are the block options declarations fall back to.
	Defaults meta.BlockOptions
}

// Load reads and validates the project file in the given directory.
func Load(dir string) (*Project, error) {
	buff, err := os.ReadFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, err
	}

	if tpf.Project == nil {
		return nil, errors.New("missing [project] table")
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	proj := &Project{Root: root}
	if err := validateProject(proj, tpf.Project); err != nil {
		return nil, err
	}

	applyDefaults(proj, tpf.Project)
	return proj, nil
}

func validateProject(proj *Project, tp *tomlProject) error {
	if tp.Name == "" {
		return fmt.Errorf("missing project name for project at %s", proj.Root)
	}

	if tp.Entry == "" {
		return fmt.Errorf("missing entry file for project `%s`", tp.Name)
	}

	proj.Name = tp.Name
	proj.EntryPath = filepath.Join(proj.Root, tp.Entry)
	return nil
}

// applyDefaults moves the remaining TOML attributes over, filling in every
// unset option.
func applyDefaults(proj *Project, tp *tomlProject) {
	proj.OutputDir = filepath.Join(proj.Root, stringOr(tp.OutputDir, "out"))
	proj.TIAVersion = stringOr(tp.TIAVersion, "V17")
	proj.LogLevel = stringOr(tp.LogLevel, "verbose")
	proj.CRLF = boolOr(tp.CRLF, true)

	proj.Defaults = meta.BlockOptions{
		OptimizedAccess: true,
		Version:         "0.1",
		WebVisible:      true,
		OPCVisible:      true,
	}

	if tp.Blocks == nil {
		return
	}

	proj.Defaults.OptimizedAccess = boolOr(tp.Blocks.OptimizedAccess, true)
	proj.Defaults.Version = stringOr(tp.Blocks.Version, "0.1")
	proj.Defaults.WebVisible = boolOr(tp.Blocks.WebVisible, true)
	proj.Defaults.OPCVisible = boolOr(tp.Blocks.OpcVisible, true)
}

func stringOr(s, dflt string) string {
	if s == "" {
		return dflt
	}

	return s
}

func boolOr(b *bool, dflt bool) bool {
	if b == nil {
		return dflt
	}

	return *b
}
