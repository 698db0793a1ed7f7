package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	opt, err := ParseArgs([]string{"prog.curry"})
	require.NoError(t, err)
	require.Equal(t, "prog.curry", opt.Src)
	require.Equal(t, defaultOutput, opt.Out)
	require.False(t, opt.Verbose)
	require.False(t, opt.Tokens)
}

func TestParseArgsOutputFlag(t *testing.T) {
	opt, err := ParseArgs([]string{"-o", "out.ll", "prog.curry"})
	require.NoError(t, err)
	require.Equal(t, "out.ll", opt.Out)
}

func TestParseArgsLongOutputFlag(t *testing.T) {
	opt, err := ParseArgs([]string{"--output", "out.ll", "prog.curry"})
	require.NoError(t, err)
	require.Equal(t, "out.ll", opt.Out)
}

func TestParseArgsThreadCount(t *testing.T) {
	opt, err := ParseArgs([]string{"-t", "4", "prog.curry"})
	require.NoError(t, err)
	require.Equal(t, 4, opt.Threads)
}

func TestParseArgsThreadCountOutOfRange(t *testing.T) {
	_, err := ParseArgs([]string{"-t", "0", "prog.curry"})
	require.Error(t, err)

	_, err = ParseArgs([]string{"-t", "65", "prog.curry"})
	require.Error(t, err)
}

func TestParseArgsThreadCountNotAnInteger(t *testing.T) {
	_, err := ParseArgs([]string{"-t", "four", "prog.curry"})
	require.Error(t, err)
}

func TestParseArgsVerboseAndTokensFlags(t *testing.T) {
	opt, err := ParseArgs([]string{"-vb", "-ts", "prog.curry"})
	require.NoError(t, err)
	require.True(t, opt.Verbose)
	require.True(t, opt.Tokens)
}

func TestParseArgsMissingSource(t *testing.T) {
	_, err := ParseArgs([]string{"-vb"})
	require.Error(t, err)
}

func TestParseArgsTooManyPositionals(t *testing.T) {
	_, err := ParseArgs([]string{"a.curry", "b.curry"})
	require.Error(t, err)
}

func TestParseArgsUnknownFlag(t *testing.T) {
	_, err := ParseArgs([]string{"--bogus", "prog.curry"})
	require.Error(t, err)
}

func TestParseArgsOutputFlagMissingArgument(t *testing.T) {
	_, err := ParseArgs([]string{"-o"})
	require.Error(t, err)
}

func TestParseArgsOutputFlagRejectsLookingLikeAFlag(t *testing.T) {
	_, err := ParseArgs([]string{"-o", "-vb", "prog.curry"})
	require.Error(t, err)
}
