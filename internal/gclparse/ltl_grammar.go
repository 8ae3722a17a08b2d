// SPDX-License-Identifier: Apache-2.0
package gclparse

import "github.com/alecthomas/participle/v2/lexer"

// Raw LTL grammar, lowest to highest precedence: implication, disjunction,
// conjunction, until/release, then the unary temporal/negation operators.
// Reuses RawRel/RawAExpr from grammar.go for the relational-atom case,
// since an LTL relational atom is syntactically identical to a GCL one.

type RawLTLFormula struct {
	Pos, EndPos lexer.Position
	Left        *RawLTLDisjunction `@@`
	Right       *RawLTLDisjunction `[ "->" @@ ]`
}

type RawLTLDisjunction struct {
	Pos, EndPos lexer.Position
	Left        *RawLTLConjunction `@@`
	Ops         []*RawLTLConjunction `{ "||" @@ }`
}

type RawLTLConjunction struct {
	Pos, EndPos lexer.Position
	Left        *RawLTLUntil `@@`
	Ops         []*RawLTLUntil `{ "&&" @@ }`
}

type RawLTLUntil struct {
	Pos, EndPos lexer.Position
	Left        *RawLTLUnary     `@@`
	Tail        *RawLTLUntilTail `[ @@ ]`
}

type RawLTLUntilTail struct {
	Op    string       `@("U" | "R")`
	Right *RawLTLUnary `@@`
}

// RawLTLUnary dispatches on which, if any, prefix operator is present;
// exactly one of Bang/Next/Glob/Fin/Atom is non-nil.
type RawLTLUnary struct {
	Pos, EndPos lexer.Position
	Bang        *RawLTLUnary `  "!" @@`
	Next        *RawLTLUnary `| "X" @@`
	Glob        *RawLTLUnary `| "G" @@`
	Fin         *RawLTLUnary `| "F" @@`
	Atom        *RawLTLAtom  `| @@`
}

type RawLTLAtom struct {
	Pos, EndPos lexer.Position
	True_       bool           `  @"true"`
	False_      bool           `| @"false"`
	Loc         *string        `| @("init" | "terminated" | "stuck")`
	Paren       *RawLTLFormula `| "(" @@ ")"`
	Rel         *RawRel        `| @@`
}
