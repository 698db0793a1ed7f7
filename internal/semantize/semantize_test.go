package semantize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"akanec/internal/diag"
	"akanec/internal/parser"
	"akanec/internal/sem"
)

// run parses src, semantizes it against a fresh context, and returns the
// defs plus every collected diagnostic (parse and semantic).
func run(t *testing.T, src string) ([]diag.Diagnostic, *sem.Context) {
	t.Helper()
	defs, parseDiags := parser.Parse(src)
	require.Empty(t, parseDiags)

	ctx := sem.NewContext()
	bag := diag.NewBag()
	New(ctx, bag).Run(defs)
	bag.Close()
	return bag.Items(), ctx
}

func TestSemantizeSimpleDefResolvesDefaultType(t *testing.T) {
	diags, _ := run(t, "fn add_one a = add a 1;")
	require.Empty(t, diags)
}

func TestSemantizeUnknownFunctionReported(t *testing.T) {
	diags, _ := run(t, "fn f a = mystery a;")
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Msg, "Unknown function")
}

func TestSemantizeUnknownTypeReported(t *testing.T) {
	diags, _ := run(t, "ty bogus fn f a = a;")
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Msg, "Unknown type")
}

func TestSemantizeDuplicateFunctionReported(t *testing.T) {
	diags, _ := run(t, "fn f a = a; fn f b = b;")
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Msg, "duplicate function")
}

func TestSemantizeOversaturatedApplicationReported(t *testing.T) {
	// add is saturated after two args; applying a third treats the i64
	// result as a callee, which is not a function type.
	diags, _ := run(t, "fn f a b c = add a b c;")
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Msg, "cannot apply non-function value")
}

func TestSemantizeArgCountMismatchAgainstAnnotation(t *testing.T) {
	diags, _ := run(t, "ty i64 -> i64 fn f a b = a;")
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Msg, "different argument count")
}

func TestSemantizePartialApplicationResolvesIntermediateType(t *testing.T) {
	// The inner "add a" partially applies add (arity 2), leaving an
	// i64 -> i64 value that the literal then saturates.
	diags, ctx := run(t, "fn f a = add a 1;")
	require.Empty(t, diags)
	i64, ok := ctx.LookupTy1("i64")
	require.True(t, ok)
	_ = i64
}

func TestSemantizeReturnTypeMismatchReported(t *testing.T) {
	diags, _ := run(t, "ty i64 -> i64 fn f a = add a;")
	// add a has type i64 -> i64, but the annotation's return type is i64.
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Msg, "return type mismatch")
}

func TestSemantizeIntegerLiteralInternsSharedFamily(t *testing.T) {
	_, ctx := run(t, "fn f a = add a 1; fn g a = add a 1;")
	one1, ok1 := ctx.Family(sem.TopQualKey(), "1")
	one2, ok2 := ctx.Family(sem.TopQualKey(), "1")
	require.True(t, ok1)
	require.True(t, ok2)
	require.Same(t, one1[0], one2[0])
}

func TestSemantizeArgShadowsOuterScope(t *testing.T) {
	// the parameter "add" would shadow the builtin within its own body;
	// definitions are independent, so this should still succeed normally
	// using the builtin name "mul" unshadowed.
	diags, _ := run(t, "fn f add = mul add add;")
	require.Empty(t, diags)
}
