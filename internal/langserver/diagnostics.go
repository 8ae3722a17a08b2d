// SPDX-License-Identifier: Apache-2.0
// Package langserver implements the GCL language server: a thin LSP
// shim that re-parses a document on every open/change and republishes
// the diagnostics internal/gclparse and internal/errors already know
// how to produce, the same pipeline cmd/gcl's "parse" subcommand drives
// from the command line.
package langserver

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"kansogcl/internal/gclparse"
)

// diagnoseProgram parses source as a GCL program and converts the first
// parse failure (GCL programs report at most one: participle stops at
// the first rejected token) into an LSP diagnostic.
func diagnoseProgram(path, source string) []protocol.Diagnostic {
	_, err := gclparse.ParseProgram(path, source)
	if err == nil {
		return nil
	}
	return []protocol.Diagnostic{diagnosticFor(err)}
}

func diagnosticFor(err error) protocol.Diagnostic {
	pe, ok := err.(*gclparse.ParseError)
	if !ok {
		return protocol.Diagnostic{
			Range:    protocol.Range{Start: protocol.Position{}, End: protocol.Position{Character: 1}},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("gcl-parser"),
			Message:  err.Error(),
		}
	}

	line := uint32(0)
	if pe.Pos.Line > 0 {
		line = uint32(pe.Pos.Line - 1)
	}
	col := uint32(0)
	if pe.Pos.Column > 0 {
		col = uint32(pe.Pos.Column - 1)
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("gcl-parser"),
		Message:  pe.Message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                           { return &s }
func ptrBool(b bool) *bool                                                 { return &b }
