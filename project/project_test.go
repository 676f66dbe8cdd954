package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func writeProjectFile(t *testing.T, text string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(text), 0o644)
	be.Err(t, err, nil)
	return dir
}

func TestLoadFullProject(t *testing.T) {
	dir := writeProjectFile(t, `
[project]
name = "plant"
entry = "src/main.json"
output-dir = "gen"
tia-version = "V18"
log-level = "warn"
crlf = false

[project.block-defaults]
optimized-access = false
version = "2.3"
web-visible = false
opc-visible = false
`)

	proj, err := Load(dir)
	be.Err(t, err, nil)

	be.Equal(t, proj.Name, "plant")
	be.Equal(t, proj.EntryPath, filepath.Join(proj.Root, "src", "main.json"))
	be.Equal(t, proj.OutputDir, filepath.Join(proj.Root, "gen"))
	be.Equal(t, proj.TIAVersion, "V18")
	be.Equal(t, proj.LogLevel, "warn")
	be.Equal(t, proj.CRLF, false)

	be.Equal(t, proj.Defaults.OptimizedAccess, false)
	be.Equal(t, proj.Defaults.Version, "2.3")
	be.Equal(t, proj.Defaults.WebVisible, false)
	be.Equal(t, proj.Defaults.OPCVisible, false)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := writeProjectFile(t, `
[project]
name = "plant"
entry = "main.json"
`)

	proj, err := Load(dir)
	be.Err(t, err, nil)

	be.Equal(t, proj.OutputDir, filepath.Join(proj.Root, "out"))
	be.Equal(t, proj.TIAVersion, "V17")
	be.Equal(t, proj.LogLevel, "verbose")
	be.Equal(t, proj.CRLF, true)

	be.Equal(t, proj.Defaults.OptimizedAccess, true)
	be.Equal(t, proj.Defaults.Version, "0.1")
	be.Equal(t, proj.Defaults.WebVisible, true)
	be.Equal(t, proj.Defaults.OPCVisible, true)
}

func TestLoadPartialBlockDefaults(t *testing.T) {
	dir := writeProjectFile(t, `
[project]
name = "plant"
entry = "main.json"

[project.block-defaults]
version = "1.0"
`)

	proj, err := Load(dir)
	be.Err(t, err, nil)

	be.Equal(t, proj.Defaults.Version, "1.0")
	be.Equal(t, proj.Defaults.OptimizedAccess, true)
	be.Equal(t, proj.Defaults.WebVisible, true)
}

func TestLoadRejectsIncompleteFiles(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no project table", `title = "plant"`},
		{"missing name", "[project]\nentry = \"main.json\""},
		{"missing entry", "[project]\nname = \"plant\""},
	}

	for _, c := range cases {
		dir := writeProjectFile(t, c.text)
		_, err := Load(dir)
		be.True(t, err != nil)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	be.True(t, err != nil)
}
