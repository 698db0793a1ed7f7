// Package ast defines the syntax tree produced by internal/parser: one
// tagged Node type carrying a NodeType, a slice of Children and an untyped
// Data payload, rather than a family of Go interfaces/structs per
// production. Semantic slots (Ty, Fn, FnKey, ArgSems) are plain mutable
// fields on the node itself, filled in later by internal/semantize.
package ast

import (
	"akanec/internal/diag"
	"akanec/internal/sem"
)

// NodeType tags the production a Node was built from.
type NodeType int

const (
	FnDef NodeType = iota
	TypeArrow
	TypeIdent
	ExprApply
	ExprIdent
)

var nodeNames = [...]string{
	FnDef:     "FN_DEF",
	TypeArrow: "TYPE_ARROW",
	TypeIdent: "TYPE_IDENT",
	ExprApply: "EXPR_APPLY",
	ExprIdent: "EXPR_IDENT",
}

func (t NodeType) String() string {
	if int(t) < len(nodeNames) {
		return nodeNames[t]
	}
	return "UNKNOWN"
}

// Node is the single syntax tree node type for the whole grammar.
//
// Meaning of fields by NodeType:
//   - FnDef: Data is the function name (string); Args is the ordered list
//     of argument names; Children[0] is the optional type annotation
//     (TypeArrow/TypeIdent, nil if absent); Children[1] is the body
//     expression.
//   - TypeArrow: Children = [lhs, rhs].
//   - TypeIdent: Data is the type name (string).
//   - ExprApply: Children = [callee, arg].
//   - ExprIdent: Data is the identifier or literal digit string (string).
type Node struct {
	Typ      NodeType
	Data     interface{}
	Args     []string
	Children []*Node
	Span     diag.Span

	// Semantic slots, late-bound by internal/semantize. Zero/nil until the
	// semantizer has visited this node.
	Ty      *sem.TySem   // TypeArrow, TypeIdent, ExprApply, ExprIdent
	Fn      *sem.FnSem   // ExprApply, ExprIdent
	FnKey   *sem.FnKey   // FnDef: the family head's key (rank 0)
	ArgSems []*sem.FnSem // FnDef: one entry per Args, in order
}

// Name returns the Data field as a string for node kinds where Data holds
// an identifier/name. Panics if Data is not a string, which indicates a
// parser bug.
func (n *Node) Name() string {
	return n.Data.(string)
}
