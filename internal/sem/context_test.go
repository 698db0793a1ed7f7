package sem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewContextRegistersBuiltins(t *testing.T) {
	ctx := NewContext()

	for _, name := range []string{"negate", "add", "sub", "mul", "div", "pipelineL"} {
		fam, ok := ctx.Family(TopQualKey(), name)
		require.Truef(t, ok, "builtin %q not registered", name)
		require.NotEmpty(t, fam)
		require.Equal(t, 0, fam[0].Rank)
	}

	add, _ := ctx.Family(TopQualKey(), "add")
	require.Len(t, add, 3) // rank 0, 1, 2 (arity 2)
	require.Equal(t, 2, add[0].Arity)
	require.Equal(t, "i64 -> i64 -> i64", add[0].Ty.Name())
}

func TestRankFamilyChaining(t *testing.T) {
	ctx := NewContext()
	add, ok := ctx.Family(TopQualKey(), "add")
	require.True(t, ok)

	next, ok := ctx.NextRank(add[0])
	require.True(t, ok)
	require.Same(t, add[1], next)

	next, ok = ctx.NextRank(add[1])
	require.True(t, ok)
	require.Same(t, add[2], next)

	_, ok = ctx.NextRank(add[2])
	require.False(t, ok, "terminal rank has no successor")
}

func TestDefineFamilyDuplicateNameFails(t *testing.T) {
	ctx := NewContext()
	i64 := ctx.Ty1(TopQualKey(), "i64")

	_, err := ctx.DefineFamily(TopQualKey(), "myFn", i64)
	require.NoError(t, err)

	_, err = ctx.DefineFamily(TopQualKey(), "myFn", i64)
	require.Error(t, err)
}

func TestInternFamilyIsIdempotent(t *testing.T) {
	ctx := NewContext()
	i64 := ctx.Ty1(TopQualKey(), "i64")

	a := ctx.InternFamily(TopQualKey(), "42", i64)
	b := ctx.InternFamily(TopQualKey(), "42", i64)
	require.Same(t, a, b)
}

func TestTySemIdentityIsInterned(t *testing.T) {
	ctx := NewContext()
	i64a := ctx.Ty1(TopQualKey(), "i64")
	i64b := ctx.Ty1(TopQualKey(), "i64")
	require.Same(t, i64a, i64b)

	arrowA := ctx.Arrow(TopQualKey(), i64a, i64a)
	arrowB := ctx.Arrow(TopQualKey(), i64a, i64a)
	require.Same(t, arrowA, arrowB)
	require.NotSame(t, arrowA.Ty2, (*Ty2Sem)(nil))
}

func TestQualStackLookupInnermostFirst(t *testing.T) {
	ctx := NewContext()
	i64 := ctx.Ty1(TopQualKey(), "i64")

	inner := TopQualKey().Pushed("outer")
	_, err := ctx.DefineFamily(inner, "shadow", i64)
	require.NoError(t, err)
	_, err = ctx.DefineFamily(TopQualKey(), "shadow", ctx.Arrow(TopQualKey(), i64, i64))
	require.NoError(t, err)

	ctx.QualStack.Push(inner)
	found, ok := ctx.LookupFamily("shadow")
	require.True(t, ok)
	require.Equal(t, inner, found.Qual)

	ctx.QualStack.Pop()
	found, ok = ctx.LookupFamily("shadow")
	require.True(t, ok)
	require.Equal(t, TopQualKey(), found.Qual)
}
