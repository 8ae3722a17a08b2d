// SPDX-License-Identifier: Apache-2.0
package gclparse

import "github.com/alecthomas/participle/v2/lexer"

// Raw* types are the participle parse tree for GCL program source. build.go
// folds them into the internal/ast trees the rest of the analyses consume;
// keeping the parse tree separate from ast lets the grammar encode operator
// precedence as nested struct levels (participle has no precedence climbing
// of its own) without leaking that nesting into ast's flat Binary/Logic
// nodes.

type RawProgram struct {
	Pos, EndPos lexer.Position
	Free        *RawFreeDecls `[ @@ ]`
	Cmds        *RawCommands  `@@`
}

type RawFreeDecls struct {
	Pos, EndPos lexer.Position
	Items       []*RawFreeItem `"free" @@ { "," @@ } ";"`
}

type RawFreeItem struct {
	Pos, EndPos lexer.Position
	Name        string `@Ident`
	IsArray     bool   `[ @"[]" ]`
}

// ---- Commands ----

type RawCommands struct {
	Pos, EndPos lexer.Position
	Items       []*RawCommand `@@ { ";" @@ } [ ";" ]`
}

type RawCommand struct {
	Pos, EndPos lexer.Position
	Pre         *RawBExpr       `[ "{" @@ "}" ]`
	Body        *RawCommandBody `@@`
	Post        *RawBExpr       `[ "{" @@ "}" ]`
}

type RawCommandBody struct {
	Pos, EndPos lexer.Position
	Skip        *RawSkip        `  @@`
	Break       *RawBreak       `| @@`
	Continue    *RawContinue    `| @@`
	If          *RawIf          `| @@`
	Do          *RawDo          `| @@`
	ArrayAssign *RawArrayAssign `| @@`
	Assign      *RawAssign      `| @@`
}

type RawSkip struct {
	Pos, EndPos lexer.Position
	Tok         string `@"skip"`
}

type RawBreak struct {
	Pos, EndPos lexer.Position
	Tok         string `@"break"`
}

type RawContinue struct {
	Pos, EndPos lexer.Position
	Tok         string `@"continue"`
}

type RawIf struct {
	Pos, EndPos lexer.Position
	Guards      []*RawGuard `"if" @@ { "[]" @@ } "fi"`
}

type RawDo struct {
	Pos, EndPos lexer.Position
	Invariant   *RawBExpr   `"do" [ "inv" @@ ";" ]`
	Guards      []*RawGuard `@@ { "[]" @@ } "od"`
}

type RawGuard struct {
	Pos, EndPos lexer.Position
	Cond        *RawBExpr    `@@ "->"`
	Body        *RawCommands `@@`
}

type RawArrayAssign struct {
	Pos, EndPos lexer.Position
	Array       string    `@Ident "["`
	Index       *RawAExpr `@@ "]" ":="`
	Value       *RawAExpr `@@`
}

type RawAssign struct {
	Pos, EndPos lexer.Position
	Var         string    `@Ident ":="`
	Value       *RawAExpr `@@`
}

// ---- Boolean expressions ----

// RawBExpr is the top level of the boolean grammar: a bounded quantifier,
// or an implication chain.
type RawBExpr struct {
	Pos, EndPos lexer.Position
	Quant       *RawQuantifier  `  @@`
	Impl        *RawImplication `| @@`
}

type RawQuantifier struct {
	Pos, EndPos lexer.Position
	Kind        string    `@("forall" | "exists")`
	Bound       string    `@Ident "."`
	Body        *RawBExpr `@@`
}

type RawImplication struct {
	Pos, EndPos lexer.Position
	Left        *RawDisjunction `@@`
	Right       *RawDisjunction `[ "=>" @@ ]`
}

type RawDisjunction struct {
	Pos, EndPos lexer.Position
	Left        *RawConjunction `@@`
	Ops         []*RawOrOp      `{ @@ }`
}

type RawOrOp struct {
	Op    string          `@("||" | "|")`
	Right *RawConjunction `@@`
}

type RawConjunction struct {
	Pos, EndPos lexer.Position
	Left        *RawNotExpr `@@`
	Ops         []*RawAndOp `{ @@ }`
}

type RawAndOp struct {
	Op    string      `@("&&" | "&")`
	Right *RawNotExpr `@@`
}

// RawNotExpr recurses on itself for "!" so arbitrarily nested negation
// parses without a separate counter field.
type RawNotExpr struct {
	Pos, EndPos lexer.Position
	Not         *RawNotExpr `  "!" @@`
	Atom        *RawBAtom   `| @@`
}

type RawBAtom struct {
	Pos, EndPos lexer.Position
	True_       bool      `  @"true"`
	False_      bool      `| @"false"`
	Rel         *RawRel   `| @@`
	Paren       *RawBExpr `| "(" @@ ")"`
}

type RawRel struct {
	Pos, EndPos lexer.Position
	Left        *RawAExpr `@@`
	Op          string    `@("==" | "=" | "!=" | "<=" | ">=" | "<" | ">")`
	Right       *RawAExpr `@@`
}

// ---- Arithmetic expressions ----

type RawAExpr struct {
	Pos, EndPos lexer.Position
	Left        *RawTerm     `@@`
	Ops         []*RawAddOp  `{ @@ }`
}

type RawAddOp struct {
	Op    string   `@("+" | "-")`
	Right *RawTerm `@@`
}

type RawTerm struct {
	Pos, EndPos lexer.Position
	Left        *RawPower   `@@`
	Ops         []*RawMulOp `{ @@ }`
}

type RawMulOp struct {
	Op    string    `@("*" | "/")`
	Right *RawPower `@@`
}

// RawPower is right-associative: x^y^z parses as x^(y^z).
type RawPower struct {
	Pos, EndPos lexer.Position
	Base        *RawUnary `@@`
	Exp         *RawPower `[ "^" @@ ]`
}

type RawUnary struct {
	Pos, EndPos lexer.Position
	Neg         bool       `[ @"-" ]`
	Primary     *RawPrimary `@@`
}

type RawPrimary struct {
	Pos, EndPos lexer.Position
	Number      *string    `  @Integer`
	Call        *RawCall   `| @@`
	ArrRef      *RawArrRef `| @@`
	Ident       *string    `| @Ident`
	Paren       *RawAExpr  `| "(" @@ ")"`
}

type RawCall struct {
	Pos, EndPos lexer.Position
	Name        string      `@Ident "("`
	Args        []*RawAExpr `[ @@ { "," @@ } ] ")"`
}

type RawArrRef struct {
	Pos, EndPos lexer.Position
	Name        string    `@Ident "["`
	Index       *RawAExpr `@@ "]"`
}
