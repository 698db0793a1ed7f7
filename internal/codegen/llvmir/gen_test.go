package llvmir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"akanec/internal/diag"
	"akanec/internal/parser"
	"akanec/internal/sem"
	"akanec/internal/semantize"
)

// compile runs the full front end (parse + semantize) then hands the
// result to GenModule, for use by generator tests that only care about the
// shape of the emitted IR text.
func compile(t *testing.T, src string) (string, []diag.Diagnostic) {
	t.Helper()
	defs, parseDiags := parser.Parse(src)
	require.Empty(t, parseDiags)

	ctx := sem.NewContext()
	bag := diag.NewBag()
	semantize.New(ctx, bag).Run(defs)
	bag.Close()
	require.Empty(t, bag.Items())

	return GenModule(ctx, defs, "test")
}

func TestGenModuleDeclaresRuntimeSymbols(t *testing.T) {
	ir, diags := compile(t, "fn one = 1;")
	require.Empty(t, diags)
	for _, sym := range []string{
		"__new_fn_thunk", "__new_next_fn_thunk", "__new_val_thunk",
		"__call_thunk", "__debug_print",
	} {
		require.Contains(t, ir, sym)
	}
}

func TestGenModuleExportedWrapperSignature(t *testing.T) {
	// add_nums has arity 2: exported wrapper should take 2 i64s and
	// return i64.
	ir, diags := compile(t, "fn add_nums a b = a + b;")
	require.Empty(t, diags)
	require.Contains(t, ir, "define i64 @add_nums(i64")
}

func TestGenModuleRankChainFunctionCount(t *testing.T) {
	// add_nums has arity 2, so 3 rank functions: add_nums..0, ..1, ..2.
	ir, diags := compile(t, "fn add_nums a b = a + b;")
	require.Empty(t, diags)
	for _, name := range []string{"add_nums..0", "add_nums..1", "add_nums..2"} {
		require.Contains(t, ir, "@"+name)
	}
}

func TestGenModuleNullaryFunctionWrapperTakesNoArgs(t *testing.T) {
	ir, diags := compile(t, "ty i64 fn one = 1;")
	require.Empty(t, diags)
	require.Contains(t, ir, "define i64 @one()")
}

func TestGenModuleBuiltinsEmitted(t *testing.T) {
	ir, diags := compile(t, "fn f a b = a + b;")
	require.Empty(t, diags)
	for _, name := range []string{"add..0", "add..1", "add..2"} {
		require.Contains(t, ir, "@"+name)
	}
}

func TestGenModulePartialApplication(t *testing.T) {
	ir, diags := compile(t, "fn mul_and_add_one a b = add (mul a b) 1;")
	require.Empty(t, diags)
	require.Contains(t, ir, "@mul_and_add_one(i64")
}
