// SPDX-License-Identifier: Apache-2.0
// Package ltl implements the surface LTL formula grammar, its
// rewriting to negation normal form, and the canonical atomic-
// proposition indexing that make syntactically distinct but
// semantically identical subformulae compare equal (§4.8.1).
package ltl

import (
	"fmt"

	"kansogcl/internal/ast"
)

// Prop is an atomic proposition: either a relational atom over the
// program's variables, or one of the special location atoms the
// reachable-state Kripke structure also labels states with (§4.8.4).
type Prop interface {
	PropKey() string
	String() string
}

// RelAtom is a relational atom (ℓ, op, r), true in a concrete state iff
// evaluating the relation there yields true.
type RelAtom struct {
	Left  ast.AExpr
	Op    ast.RelOp
	Right ast.AExpr
}

func (p RelAtom) PropKey() string { return fmt.Sprintf("rel:%s", p.String()) }
func (p RelAtom) String() string  { return (&ast.Rel{Left: p.Left, Op: p.Op, Right: p.Right}).String() }

// LocAtom is one of the three location atoms: init, terminated, stuck.
type LocAtom struct{ Name string }

func (p LocAtom) PropKey() string { return "loc:" + p.Name }
func (p LocAtom) String() string  { return p.Name }

// Formula is the surface LTL grammar, before NNF rewriting: propositional
// connectives, Until/Release, Next, Globally, Finally.
type Formula interface {
	formula()
	String() string
}

type BoolConst struct{ Value bool }
type Atom struct{ Prop Prop }
type Neg struct{ Operand Formula }
type Conj struct{ Left, Right Formula }
type Disj struct{ Left, Right Formula }
type Impl struct{ Left, Right Formula }
type Next struct{ Operand Formula }
type Until struct{ Left, Right Formula }
type Release struct{ Left, Right Formula }
type Globally struct{ Operand Formula }
type Finally struct{ Operand Formula }

func (*BoolConst) formula() {}
func (*Atom) formula()      {}
func (*Neg) formula()       {}
func (*Conj) formula()      {}
func (*Disj) formula()      {}
func (*Impl) formula()      {}
func (*Next) formula()      {}
func (*Until) formula()     {}
func (*Release) formula()   {}
func (*Globally) formula()  {}
func (*Finally) formula()   {}

func (f *BoolConst) String() string {
	if f.Value {
		return "true"
	}
	return "false"
}
func (f *Atom) String() string     { return f.Prop.String() }
func (f *Neg) String() string      { return "!" + f.Operand.String() }
func (f *Conj) String() string     { return "(" + f.Left.String() + " && " + f.Right.String() + ")" }
func (f *Disj) String() string     { return "(" + f.Left.String() + " || " + f.Right.String() + ")" }
func (f *Impl) String() string     { return "(" + f.Left.String() + " -> " + f.Right.String() + ")" }
func (f *Next) String() string     { return "X " + f.Operand.String() }
func (f *Until) String() string    { return "(" + f.Left.String() + " U " + f.Right.String() + ")" }
func (f *Release) String() string  { return "(" + f.Left.String() + " V " + f.Right.String() + ")" }
func (f *Globally) String() string { return "G " + f.Operand.String() }
func (f *Finally) String() string  { return "F " + f.Operand.String() }
