// SPDX-License-Identifier: Apache-2.0
package gclparse

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"kansogcl/internal/ast"
	"kansogcl/internal/errors"
	"kansogcl/internal/flowsec"
)

// ---- Security-lattice edge declarations: "Low < High ;" per line ----

type RawLatticeFile struct {
	Pos, EndPos lexer.Position
	Edges       []*RawLatticeEdge `@@*`
}

type RawLatticeEdge struct {
	Pos, EndPos lexer.Position
	From        string `@Ident "<"`
	Into        string `@Ident ";"`
}

var (
	latticeParserOnce sync.Once
	latticeParser     *participle.Parser[RawLatticeFile]
	latticeParserErr  error
)

func buildLatticeParser() (*participle.Parser[RawLatticeFile], error) {
	latticeParserOnce.Do(func() {
		latticeParser, latticeParserErr = participle.Build[RawLatticeFile](
			participle.Lexer(gclLexer),
			participle.Elide("Whitespace", "Comment"),
		)
	})
	return latticeParser, latticeParserErr
}

// ParseLattice parses a sequence of "Low < High ;" edge declarations into
// the raw edge set NewSecurityLattice closes into a SecurityLattice.
func ParseLattice(filename, source string) ([]flowsec.ClassEdge, error) {
	parser, err := buildLatticeParser()
	if err != nil {
		return nil, fmt.Errorf("gclparse: building lattice parser: %w", err)
	}
	raw, err := parser.ParseString(filename, source)
	if err != nil {
		pos := positionOf(err)
		diag := errors.LatticeParseFailure(err.Error(), pos)
		return nil, &ParseError{Pos: pos, Message: diag.Message}
	}
	edges := make([]flowsec.ClassEdge, len(raw.Edges))
	for i, e := range raw.Edges {
		edges[i] = flowsec.ClassEdge{From: e.From, Into: e.Into}
	}
	return edges, nil
}

// ---- Classification declarations: "x : Low ;" / "A[] : High ;" per line ----

type RawClassificationFile struct {
	Pos, EndPos lexer.Position
	Entries     []*RawClassificationEntry `@@*`
}

type RawClassificationEntry struct {
	Pos, EndPos lexer.Position
	Name        string `@Ident`
	IsArray     bool   `[ @"[]" ]`
	Class       string `":" @Ident ";"`
}

var (
	classificationParserOnce sync.Once
	classificationParser     *participle.Parser[RawClassificationFile]
	classificationParserErr  error
)

func buildClassificationParser() (*participle.Parser[RawClassificationFile], error) {
	classificationParserOnce.Do(func() {
		classificationParser, classificationParserErr = participle.Build[RawClassificationFile](
			participle.Lexer(gclLexer),
			participle.Elide("Whitespace", "Comment"),
		)
	})
	return classificationParser, classificationParserErr
}

// ParseClassification parses a sequence of "target : class ;" entries into
// a flowsec.Classification keyed by ast.Target.
func ParseClassification(filename, source string) (flowsec.Classification, error) {
	parser, err := buildClassificationParser()
	if err != nil {
		return nil, fmt.Errorf("gclparse: building classification parser: %w", err)
	}
	raw, err := parser.ParseString(filename, source)
	if err != nil {
		pos := positionOf(err)
		diag := errors.LatticeParseFailure(err.Error(), pos)
		return nil, &ParseError{Pos: pos, Message: diag.Message}
	}
	out := flowsec.Classification{}
	for _, e := range raw.Entries {
		target := ast.NewVar(e.Name)
		if e.IsArray {
			target = ast.BareArray(e.Name)
		}
		out[target] = e.Class
	}
	return out, nil
}
