package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopOrder(t *testing.T) {
	s := New[int]()
	s.Push(1)
	s.Push(2)
	s.Push(3)

	v, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, 3, v)

	v, ok = s.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestPopEmptyReturnsFalse(t *testing.T) {
	s := New[string]()
	_, ok := s.Pop()
	require.False(t, ok)
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := New[int]()
	s.Push(42)
	v, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, 42, v)
	require.Equal(t, 1, s.Size())
}

// TestGetSingleElementIsTopAndBottom guards against an off-by-one walking
// the backing linked list: with exactly one element, Get(1) must return it
// rather than walking past the end of the list.
func TestGetSingleElementIsTopAndBottom(t *testing.T) {
	s := New[string]()
	s.Push("only")
	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "only", v)
}

func TestGetWalksTopDown(t *testing.T) {
	s := New[int]()
	s.Push(10) // bottom
	s.Push(20)
	s.Push(30) // top

	top, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, 30, top)

	mid, ok := s.Get(2)
	require.True(t, ok)
	require.Equal(t, 20, mid)

	bottom, ok := s.Get(3)
	require.True(t, ok)
	require.Equal(t, 10, bottom)
}

func TestGetOutOfRange(t *testing.T) {
	s := New[int]()
	s.Push(1)
	_, ok := s.Get(0)
	require.False(t, ok)
	_, ok = s.Get(2)
	require.False(t, ok)
}
