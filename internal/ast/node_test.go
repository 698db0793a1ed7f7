package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeTypeStringNames(t *testing.T) {
	require.Equal(t, "FN_DEF", FnDef.String())
	require.Equal(t, "EXPR_APPLY", ExprApply.String())
	require.Equal(t, "UNKNOWN", NodeType(99).String())
}

func TestNodeNameReturnsStringData(t *testing.T) {
	n := &Node{Typ: ExprIdent, Data: "foo"}
	require.Equal(t, "foo", n.Name())
}

func TestNodeNamePanicsOnNonStringData(t *testing.T) {
	n := &Node{Typ: ExprApply, Data: 42}
	require.Panics(t, func() { n.Name() })
}
