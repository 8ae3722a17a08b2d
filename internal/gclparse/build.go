// SPDX-License-Identifier: Apache-2.0
package gclparse

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"kansogcl/internal/ast"
)

func convPos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// FreeDecl names one declared free variable or free array.
type FreeDecl struct {
	Name    string
	IsArray bool
}

func buildFreeDecls(f *RawFreeDecls) []FreeDecl {
	if f == nil {
		return nil
	}
	out := make([]FreeDecl, len(f.Items))
	for i, item := range f.Items {
		out[i] = FreeDecl{Name: item.Name, IsArray: item.IsArray}
	}
	return out
}

func buildCommands(c *RawCommands) *ast.Commands {
	items := make([]ast.Command, len(c.Items))
	for i, raw := range c.Items {
		items[i] = buildCommand(raw)
	}
	return &ast.Commands{Pos: convPos(c.Pos), EndPos: convPos(c.EndPos), Items: items}
}

func buildCommand(c *RawCommand) ast.Command {
	var ann *ast.Annotation
	if c.Pre != nil || c.Post != nil {
		ann = &ast.Annotation{}
		if c.Pre != nil {
			ann.Pre = buildBExpr(c.Pre)
		}
		if c.Post != nil {
			ann.Post = buildBExpr(c.Post)
		}
	}
	return buildCommandBody(c.Body, ann)
}

func buildCommandBody(b *RawCommandBody, ann *ast.Annotation) ast.Command {
	pos, end := convPos(b.Pos), convPos(b.EndPos)
	switch {
	case b.Skip != nil:
		return &ast.Skip{Pos: pos, EndPos: end, Ann: ann}
	case b.Break != nil:
		return &ast.Break{Pos: pos, EndPos: end}
	case b.Continue != nil:
		return &ast.Continue{Pos: pos, EndPos: end}
	case b.If != nil:
		guards := make([]*ast.Guard, len(b.If.Guards))
		for i, g := range b.If.Guards {
			guards[i] = buildGuard(g)
		}
		return &ast.If{Pos: pos, EndPos: end, Guards: guards, Ann: ann}
	case b.Do != nil:
		guards := make([]*ast.Guard, len(b.Do.Guards))
		for i, g := range b.Do.Guards {
			guards[i] = buildGuard(g)
		}
		var inv ast.BExpr
		if b.Do.Invariant != nil {
			inv = buildBExpr(b.Do.Invariant)
		}
		return &ast.Do{Pos: pos, EndPos: end, Invariant: inv, Guards: guards, Ann: ann}
	case b.ArrayAssign != nil:
		a := b.ArrayAssign
		return &ast.ArrayAssignment{
			Pos: pos, EndPos: end,
			Array: a.Array, Index: buildAExpr(a.Index), Value: buildAExpr(a.Value), Ann: ann,
		}
	case b.Assign != nil:
		a := b.Assign
		return &ast.Assignment{Pos: pos, EndPos: end, Var: a.Var, Value: buildAExpr(a.Value), Ann: ann}
	default:
		panic("gclparse: empty command body")
	}
}

func buildGuard(g *RawGuard) *ast.Guard {
	return &ast.Guard{
		Pos: convPos(g.Pos), EndPos: convPos(g.EndPos),
		Cond: buildBExpr(g.Cond), Body: buildCommands(g.Body),
	}
}

// ---- Boolean expressions ----

func buildBExpr(b *RawBExpr) ast.BExpr {
	pos, end := convPos(b.Pos), convPos(b.EndPos)
	if b.Quant != nil {
		return &ast.Quantifier{
			Pos: pos, EndPos: end,
			Universal: b.Quant.Kind == "forall",
			Bound:     b.Quant.Bound,
			Body:      buildBExpr(b.Quant.Body),
		}
	}
	return buildImplication(b.Impl)
}

func buildImplication(i *RawImplication) ast.BExpr {
	left := buildDisjunction(i.Left)
	if i.Right == nil {
		return left
	}
	right := buildDisjunction(i.Right)
	return &ast.Implies{Pos: left.NodePos(), EndPos: right.NodeEndPos(), Left: left, Right: right}
}

func buildDisjunction(d *RawDisjunction) ast.BExpr {
	acc := buildConjunction(d.Left)
	for _, op := range d.Ops {
		right := buildConjunction(op.Right)
		logicOp := ast.LogicOr
		if op.Op == "|" {
			logicOp = ast.LogicLor
		}
		acc = &ast.Logic{Pos: acc.NodePos(), EndPos: right.NodeEndPos(), Left: acc, Op: logicOp, Right: right}
	}
	return acc
}

func buildConjunction(c *RawConjunction) ast.BExpr {
	acc := buildNotExpr(c.Left)
	for _, op := range c.Ops {
		right := buildNotExpr(op.Right)
		logicOp := ast.LogicAnd
		if op.Op == "&" {
			logicOp = ast.LogicLand
		}
		acc = &ast.Logic{Pos: acc.NodePos(), EndPos: right.NodeEndPos(), Left: acc, Op: logicOp, Right: right}
	}
	return acc
}

func buildNotExpr(n *RawNotExpr) ast.BExpr {
	if n.Not != nil {
		inner := buildNotExpr(n.Not)
		return &ast.Not{Pos: convPos(n.Pos), EndPos: inner.NodeEndPos(), Operand: inner}
	}
	return buildBAtom(n.Atom)
}

func buildBAtom(a *RawBAtom) ast.BExpr {
	pos, end := convPos(a.Pos), convPos(a.EndPos)
	switch {
	case a.True_:
		return &ast.BoolLit{Pos: pos, EndPos: end, Value: true}
	case a.False_:
		return &ast.BoolLit{Pos: pos, EndPos: end, Value: false}
	case a.Rel != nil:
		r := a.Rel
		return &ast.Rel{Pos: pos, EndPos: end, Left: buildAExpr(r.Left), Op: relOp(r.Op), Right: buildAExpr(r.Right)}
	case a.Paren != nil:
		return buildBExpr(a.Paren)
	default:
		panic("gclparse: empty boolean atom")
	}
}

func relOp(op string) ast.RelOp {
	switch op {
	case "==", "=":
		return ast.RelEq
	case "!=":
		return ast.RelNe
	case "<=":
		return ast.RelLe
	case ">=":
		return ast.RelGe
	case "<":
		return ast.RelLt
	case ">":
		return ast.RelGt
	default:
		panic(fmt.Sprintf("gclparse: unknown relational operator %q", op))
	}
}

// ---- Arithmetic expressions ----

func buildAExpr(e *RawAExpr) ast.AExpr {
	acc := buildTerm(e.Left)
	for _, op := range e.Ops {
		right := buildTerm(op.Right)
		aop := ast.OpPlus
		if op.Op == "-" {
			aop = ast.OpMinus
		}
		acc = &ast.BinaryA{Pos: acc.NodePos(), EndPos: right.NodeEndPos(), Left: acc, Op: aop, Right: right}
	}
	return acc
}

func buildTerm(t *RawTerm) ast.AExpr {
	acc := buildPower(t.Left)
	for _, op := range t.Ops {
		right := buildPower(op.Right)
		aop := ast.OpTimes
		if op.Op == "/" {
			aop = ast.OpDivide
		}
		acc = &ast.BinaryA{Pos: acc.NodePos(), EndPos: right.NodeEndPos(), Left: acc, Op: aop, Right: right}
	}
	return acc
}

func buildPower(p *RawPower) ast.AExpr {
	base := buildUnary(p.Base)
	if p.Exp == nil {
		return base
	}
	exp := buildPower(p.Exp)
	return &ast.BinaryA{Pos: base.NodePos(), EndPos: exp.NodeEndPos(), Left: base, Op: ast.OpPow, Right: exp}
}

func buildUnary(u *RawUnary) ast.AExpr {
	primary := buildPrimary(u.Primary)
	if !u.Neg {
		return primary
	}
	return &ast.UnaryMinus{Pos: convPos(u.Pos), EndPos: primary.NodeEndPos(), Operand: primary}
}

func buildPrimary(p *RawPrimary) ast.AExpr {
	pos, end := convPos(p.Pos), convPos(p.EndPos)
	switch {
	case p.Number != nil:
		var v int64
		fmt.Sscanf(*p.Number, "%d", &v)
		return &ast.Number{Pos: pos, EndPos: end, Value: v}
	case p.Call != nil:
		args := make([]ast.AExpr, len(p.Call.Args))
		for i, a := range p.Call.Args {
			args[i] = buildAExpr(a)
		}
		return &ast.FuncCall{Pos: pos, EndPos: end, Name: ast.Function(p.Call.Name), Args: args}
	case p.ArrRef != nil:
		return &ast.ArrayRef{Pos: pos, EndPos: end, Name: p.ArrRef.Name, Index: buildAExpr(p.ArrRef.Index)}
	case p.Ident != nil:
		return &ast.VarRef{Pos: pos, EndPos: end, Name: *p.Ident}
	case p.Paren != nil:
		return buildAExpr(p.Paren)
	default:
		panic("gclparse: empty arithmetic primary")
	}
}
