// Package codegen assembles SCL block sources from registered metadata and
// lowered procedure bodies.  Each generator produces one named text artifact
// per declaration; the artifacts carry no on-disk layout, only a filename
// suffix for the shell to apply.
package codegen

import "github.com/toanphambk/ts2scl/meta"

// Artifact is one generated block source.
type Artifact struct {
	Name     string
	Category meta.BlockCategory
	Suffix   string
	Text     string
}
