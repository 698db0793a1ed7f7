// Package semantize walks the parsed syntax tree, populating its semantic
// slots (Ty, Fn, FnKey, ArgSems) by resolving names and types against a
// sem.Context.
//
// Errors are collected into a diag.Bag and never panic: a bad definition is
// abandoned with its FnKey slot left nil (so code generation skips it), but
// does not stop its siblings from being processed.
package semantize

import (
	"strconv"

	"akanec/internal/ast"
	"akanec/internal/diag"
	"akanec/internal/sem"
)

// Semantizer resolves names and types over a shared sem.Context.
type Semantizer struct {
	ctx   *sem.Context
	diags *diag.Bag
}

// New returns a Semantizer reporting into diags and resolving against ctx.
func New(ctx *sem.Context, diags *diag.Bag) *Semantizer {
	return &Semantizer{ctx: ctx, diags: diags}
}

// Run semantizes every top-level function definition in defs.
func (s *Semantizer) Run(defs []*ast.Node) {
	for _, d := range defs {
		s.fnDef(d)
	}
}

// fnDef processes one top-level function definition.
func (s *Semantizer) fnDef(n *ast.Node) {
	qual, _ := s.ctx.QualStack.Peek()
	name := n.Name()

	var fullTy *sem.TySem
	if ann := n.Children[0]; ann != nil {
		ty := s.typeExpr(ann, qual)
		if ty == nil {
			return
		}
		fullTy = ty
	} else {
		fullTy = s.ctx.DefaultTy(qual, len(n.Args))
	}

	head, err := s.ctx.DefineFamily(qual, name, fullTy)
	if err != nil {
		s.diags.Add(n.Span, "%s", err)
		return
	}
	key := head.Key()
	n.FnKey = &key
	failed := true
	defer func() {
		if failed {
			n.FnKey = nil
		}
	}()

	argTys, retTy := sem.SplitFnTy(fullTy)
	if len(argTys) != len(n.Args) {
		s.diags.Add(n.Span, "different argument count between type annotation and function definition")
		return
	}

	innerQual := qual.Pushed(name)
	s.ctx.QualStack.Push(innerQual)
	defer s.ctx.QualStack.Pop()

	n.ArgSems = make([]*sem.FnSem, len(n.Args))
	for i, argName := range n.Args {
		argHead, err := s.ctx.DefineFamily(innerQual, argName, argTys[i])
		if err != nil {
			s.diags.Add(n.Span, "%s", err)
			return
		}
		n.ArgSems[i] = argHead
	}

	body := n.Children[1]
	s.expr(body)
	if body.Ty == nil {
		return // error already reported inside the body
	}
	if body.Ty != retTy {
		s.diags.Add(body.Span, "return type mismatch: expected %s, got %s", retTy.Name(), body.Ty.Name())
		return
	}
	failed = false
}

// typeExpr resolves a parsed type expression to its interned TySem.
func (s *Semantizer) typeExpr(n *ast.Node, qual sem.QualKey) *sem.TySem {
	switch n.Typ {
	case ast.TypeIdent:
		name := n.Name()
		ty, ok := s.ctx.LookupTy1(name)
		if !ok {
			s.diags.Add(n.Span, "Unknown type: %s", name)
			return nil
		}
		n.Ty = ty
		return ty
	case ast.TypeArrow:
		lhs := s.typeExpr(n.Children[0], qual)
		rhs := s.typeExpr(n.Children[1], qual)
		if lhs == nil || rhs == nil {
			return nil
		}
		ty := s.ctx.Arrow(qual, lhs, rhs)
		n.Ty = ty
		return ty
	}
	return nil
}

// expr resolves an expression node.
func (s *Semantizer) expr(n *ast.Node) {
	switch n.Typ {
	case ast.ExprIdent:
		s.ident(n)
	case ast.ExprApply:
		s.apply(n)
	}
}

func (s *Semantizer) ident(n *ast.Node) {
	name := n.Name()
	if isNonNegativeInt(name) {
		i64 := s.ctx.Ty1(sem.TopQualKey(), "i64")
		fn := s.ctx.InternFamily(sem.TopQualKey(), name, i64)
		n.Fn = fn
		n.Ty = fn.Ty
		return
	}
	if fn, ok := s.ctx.LookupFamily(name); ok {
		n.Fn = fn
		n.Ty = fn.Ty
		return
	}
	s.diags.Add(n.Span, "Unknown function: %s", name)
}

func (s *Semantizer) apply(n *ast.Node) {
	callee, arg := n.Children[0], n.Children[1]
	s.expr(callee)
	s.expr(arg)
	if callee.Fn == nil || callee.Ty == nil {
		return
	}
	out, ok := callee.Ty.OutTy()
	if !ok {
		s.diags.Add(n.Span, "cannot apply non-function value of type %s", callee.Ty.Name())
		return
	}
	next, ok := s.ctx.NextRank(callee.Fn)
	if !ok {
		s.diags.Add(n.Span, "function %s is already saturated", callee.Fn.Name)
		return
	}
	n.Ty = out
	n.Fn = next
}

func isNonNegativeInt(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
