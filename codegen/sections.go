package codegen

import (
	"strings"

	"github.com/toanphambk/ts2scl/lower"
	"github.com/toanphambk/ts2scl/meta"
)

const indentUnit = "    "

var sectionHeaders = map[meta.Scope]string{
	meta.ScopeIn:     "VAR_INPUT",
	meta.ScopeOut:    "VAR_OUTPUT",
	meta.ScopeInOut:  "VAR_IN_OUT",
	meta.ScopeStatic: "VAR",
	meta.ScopeTemp:   "VAR_TEMP",
}

// sectionOrder is the emission order of variable sections within a block.
var sectionOrder = []meta.Scope{
	meta.ScopeIn,
	meta.ScopeOut,
	meta.ScopeInOut,
	meta.ScopeStatic,
	meta.ScopeTemp,
}

// sections partitions props by scope and retain flag and renders one section
// per non-empty partition.  Within a scope, the retained partition precedes
// the plain one.
func sections(props []*meta.PropMeta, indent int) []string {
	var lines []string
	for _, scope := range sectionOrder {
		var retained, plain []*meta.PropMeta
		for _, p := range props {
			if p.Scope != scope {
				continue
			}

			if p.Retain {
				retained = append(retained, p)
			} else {
				plain = append(plain, p)
			}
		}

		header := sectionHeaders[scope]
		if len(retained) > 0 {
			lines = append(lines, section(header+" RETAIN", retained, indent)...)
		}

		if len(plain) > 0 {
			lines = append(lines, section(header, plain, indent)...)
		}
	}

	return lines
}

func section(header string, props []*meta.PropMeta, indent int) []string {
	ind := strings.Repeat(indentUnit, indent)

	lines := []string{ind + header}
	for _, p := range props {
		lines = append(lines, ind+indentUnit+declLine(p))
	}

	return append(lines, ind+"END_VAR")
}

// declLine renders one variable declaration.  The visibility overlay appears
// only when at least one external flag deviates from its implicit default.
func declLine(p *meta.PropMeta) string {
	line := p.Name

	if overlay := visibilityOverlay(p); overlay != "" {
		line += " " + overlay
	}

	return line + " : " + declTypeText(p) + ";"
}

func declTypeText(p *meta.PropMeta) string {
	if p.Instruction != "" {
		return p.Instruction
	}

	return p.SectionType().Repr()
}

func visibilityOverlay(p *meta.PropMeta) string {
	var flags []string
	if !p.ExternalAccessible {
		flags = append(flags, "ExternalAccessible := 'FALSE'")
	}

	if !p.ExternalVisible {
		flags = append(flags, "ExternalVisible := 'FALSE'")
	}

	if !p.ExternalWritable {
		flags = append(flags, "ExternalWritable := 'FALSE'")
	}

	if len(flags) == 0 {
		return ""
	}

	return "{ " + strings.Join(flags, "; ") + " }"
}

// tempSection renders the VAR_TEMP section: the temp-scoped props among
// props, plus every body local not declared anywhere in props.  Loop
// counters reusing a static or parameter must not be re-declared here.
// FC/FB bodies always carry the section, even when empty.
func tempSection(props []*meta.PropMeta, locals []lower.Local, indent int) []string {
	ind := strings.Repeat(indentUnit, indent)

	declared := make(map[string]bool)
	lines := []string{ind + "VAR_TEMP"}
	for _, p := range props {
		declared[p.Name] = true
		if p.Scope != meta.ScopeTemp {
			continue
		}

		lines = append(lines, ind+indentUnit+declLine(p))
	}

	for _, lv := range locals {
		if declared[lv.Name] {
			continue
		}

		lines = append(lines, ind+indentUnit+lv.Name+" : "+lv.Type.Repr()+";")
	}

	return append(lines, ind+"END_VAR")
}
