package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBagCollectsInReportOrder(t *testing.T) {
	b := NewBag()
	b.Add(Span{Line: 1, Column: 1}, "first")
	b.Add(Span{Line: 2, Column: 1}, "second %d", 2)
	b.Close()

	items := b.Items()
	require.Len(t, items, 2)
	require.Equal(t, "first", items[0].Msg)
	require.Equal(t, "second 2", items[1].Msg)
	require.Equal(t, "2 error(s) found", b.Summary())
}

func TestDiagnosticErrorFormatsSpanAndMessage(t *testing.T) {
	d := Diagnostic{Span: Span{Line: 3, Column: 7}, Msg: "boom"}
	require.Equal(t, "3:7: boom", d.Error())
}

func TestJoinOrdersByPositionRegardlessOfArgOrder(t *testing.T) {
	a := Span{Line: 1, Column: 9, Slice: "foo", LineSlice: "let x = foo + bar"}
	b := Span{Line: 1, Column: 15, Slice: "bar", LineSlice: "let x = foo + bar"}

	forward := Join(a, b)
	backward := Join(b, a)

	require.Equal(t, forward, backward)
	require.Equal(t, 1, forward.Line)
	require.Equal(t, 9, forward.Column)
	require.Equal(t, "foo + bar", forward.Slice)
}

func TestJoinAcrossLinesKeepsEarlierLineSlice(t *testing.T) {
	a := Span{Line: 1, Column: 1, Slice: "a", LineSlice: "a ="}
	b := Span{Line: 2, Column: 3, Slice: "b", LineSlice: "  b;"}

	joined := Join(a, b)
	require.Equal(t, 1, joined.Line)
	require.Equal(t, "a =", joined.LineSlice)
}
