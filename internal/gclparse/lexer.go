// SPDX-License-Identifier: Apache-2.0
// Package gclparse turns GCL program source, LTL formula source, and
// security-lattice declaration source into the trees internal/ast,
// internal/ltl, and internal/flowsec already operate on.
package gclparse

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// gclLexer tokenizes all three surface languages this package parses
// (programs, LTL formulas, lattice/classification declarations): one
// shared token set keeps a single stateful lexer definition instead of
// three near-identical ones, since none of the three need mutually
// exclusive keywords.
var gclLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Integer", Pattern: `[0-9]+`, Action: nil},
		{Name: "Operator", Pattern: `(:=|->|=>|\[\]|&&|\|\||==|!=|<=|>=|[-+*/%^<>=!&|.])`, Action: nil},
		{Name: "Punctuation", Pattern: `[{}\[\](),;:]`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
