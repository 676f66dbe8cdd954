package codegen

import (
	"github.com/toanphambk/ts2scl/lower"
	"github.com/toanphambk/ts2scl/meta"
)

// InstanceSuffix is the filename suffix of auxiliary instance data blocks.
const InstanceSuffix = ".instance.db"

// InstanceDB renders the auxiliary data block backing one single-kind
// instance record.  Built-in instruction instances declare the bare
// instruction name; block instances declare the quoted block type.  An
// instance type with no registered metadata is fatal for the record.
func (g *Generator) InstanceDB(rec *meta.InstanceRecord, opts meta.BlockOptions) (*Artifact, error) {
	raw := rec.RawInstruction
	if raw == "" {
		bm, ok := g.reg.LookupAny(rec.TypeName)
		if !ok {
			return nil, &lower.UnresolvedError{What: "instance type", Symbol: rec.TypeName}
		}

		raw = bm.Instruction
	}

	typeLine := `"` + rec.TypeName + `"`
	if raw != "" {
		typeLine = raw
	}

	lines := []string{`DATA_BLOCK "` + rec.Name + `"`}
	lines = append(lines, attributeLines(opts)...)
	lines = append(lines, typeLine, "BEGIN", "", "END_DATA_BLOCK")

	return &Artifact{
		Name:     rec.Name,
		Category: meta.DB,
		Suffix:   InstanceSuffix,
		Text:     finish(lines),
	}, nil
}
