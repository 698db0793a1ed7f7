package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadReturnsFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.curry")
	require.NoError(t, os.WriteFile(path, []byte("fn f a = a;"), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, "fn f a = a;", got)
}

func TestReadMissingFileReturnsError(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "does-not-exist.curry"))
	require.Error(t, err)
}
