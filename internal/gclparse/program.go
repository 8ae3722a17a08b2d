// SPDX-License-Identifier: Apache-2.0
package gclparse

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"

	"kansogcl/internal/ast"
	"kansogcl/internal/errors"
)

var (
	programParserOnce sync.Once
	programParser     *participle.Parser[RawProgram]
	programParserErr  error
)

func buildProgramParser() (*participle.Parser[RawProgram], error) {
	programParserOnce.Do(func() {
		programParser, programParserErr = participle.Build[RawProgram](
			participle.Lexer(gclLexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(4),
		)
	})
	return programParser, programParserErr
}

// Program is a parsed GCL source unit: its command sequence plus the
// declared free variables and free arrays that name its program-graph
// state space (§4.1).
type Program struct {
	Commands  *ast.Commands
	FreeVars  []string
	FreeArrays []string
}

// ParseProgram parses GCL program source (an optional leading `free ...;`
// declaration followed by a command sequence) into a Program.
func ParseProgram(filename, source string) (*Program, error) {
	parser, err := buildProgramParser()
	if err != nil {
		return nil, fmt.Errorf("gclparse: building parser: %w", err)
	}

	raw, err := parser.ParseString(filename, source)
	if err != nil {
		pos := positionOf(err)
		diag := errors.ParseFailure(err.Error(), pos)
		return nil, &ParseError{Pos: pos, Message: diag.Message}
	}

	decls := buildFreeDecls(raw.Free)
	prog := &Program{Commands: buildCommands(raw.Cmds)}
	for _, d := range decls {
		if d.IsArray {
			prog.FreeArrays = append(prog.FreeArrays, d.Name)
		} else {
			prog.FreeVars = append(prog.FreeVars, d.Name)
		}
	}
	return prog, nil
}

// positionOf extracts the best-effort source position from a participle
// parse error, falling back to the zero position when the error doesn't
// carry one.
func positionOf(err error) ast.Position {
	if pe, ok := err.(participle.Error); ok {
		p := pe.Position()
		return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
	}
	return ast.Position{}
}
