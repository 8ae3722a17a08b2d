// SPDX-License-Identifier: Apache-2.0
package gclparse

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"

	"kansogcl/internal/errors"
	"kansogcl/internal/ltl"
)

var (
	ltlParserOnce sync.Once
	ltlParser     *participle.Parser[RawLTLFormula]
	ltlParserErr  error
)

func buildLTLParser() (*participle.Parser[RawLTLFormula], error) {
	ltlParserOnce.Do(func() {
		ltlParser, ltlParserErr = participle.Build[RawLTLFormula](
			participle.Lexer(gclLexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(4),
		)
	})
	return ltlParser, ltlParserErr
}

// ParseLTL parses LTL formula source (e.g. "G (x >= 0)" or "F terminated")
// into an ltl.Formula.
func ParseLTL(filename, source string) (ltl.Formula, error) {
	parser, err := buildLTLParser()
	if err != nil {
		return nil, fmt.Errorf("gclparse: building LTL parser: %w", err)
	}

	raw, err := parser.ParseString(filename, source)
	if err != nil {
		pos := positionOf(err)
		diag := errors.LTLParseFailure(err.Error(), pos)
		return nil, &ParseError{Pos: pos, Message: diag.Message}
	}
	return buildLTLFormula(raw), nil
}
