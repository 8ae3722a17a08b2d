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
	assertionParserOnce sync.Once
	assertionParser     *participle.Parser[RawBExpr]
	assertionParserErr  error
)

func buildAssertionParser() (*participle.Parser[RawBExpr], error) {
	assertionParserOnce.Do(func() {
		assertionParser, assertionParserErr = participle.Build[RawBExpr](
			participle.Lexer(gclLexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(4),
		)
	})
	return assertionParser, assertionParserErr
}

// ParseAssertion parses a standalone boolean expression, the form a
// verification-condition postcondition or a loop invariant takes on its
// own (outside the `{ ... }` brackets a command annotation wraps it in).
func ParseAssertion(filename, source string) (ast.BExpr, error) {
	parser, err := buildAssertionParser()
	if err != nil {
		return nil, fmt.Errorf("gclparse: building assertion parser: %w", err)
	}

	raw, err := parser.ParseString(filename, source)
	if err != nil {
		pos := positionOf(err)
		diag := errors.ParseFailure(err.Error(), pos)
		return nil, &ParseError{Pos: pos, Message: diag.Message}
	}
	return buildBExpr(raw), nil
}
