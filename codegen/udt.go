package codegen

import "github.com/toanphambk/ts2scl/meta"

// genUDT renders a user-defined type: a STRUCT field list with no behavior
// section.
func (g *Generator) genUDT(bm *meta.BlockMeta) (*Artifact, error) {
	lines := []string{
		`TYPE "` + bm.Name + `"`,
		"VERSION : " + bm.Version,
		indentUnit + "STRUCT",
	}

	for _, p := range g.blockProps(bm.Name) {
		lines = append(lines, indentUnit+indentUnit+declLine(p))
	}

	lines = append(lines, indentUnit+"END_STRUCT;", "", "END_TYPE")

	return &Artifact{
		Name:     bm.Name,
		Category: meta.UDT,
		Suffix:   meta.UDT.Suffix(),
		Text:     finish(lines),
	}, nil
}
