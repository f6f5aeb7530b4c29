package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/routecoordinator/pkg/routecoordinator/navigation"
)

func TestStackPushPop(t *testing.T) {
	s := navigation.NewStack()
	require.True(t, s.IsEmpty())
	require.Nil(t, s.Pop())
	require.Nil(t, s.Peek())

	s.Push(navigation.Titled("Home"))
	s.Push(navigation.Titled("Detail"))
	s.Push(nil)

	require.Equal(t, 2, s.Len())
	require.Equal(t, []string{"Home", "Detail"}, s.Titles())
	require.Equal(t, "Detail", s.Peek().Title())

	require.Equal(t, "Detail", s.Pop().Title())
	require.Equal(t, "Home", s.Peek().Title())

	s.Clear()
	require.True(t, s.IsEmpty())
}

func TestFrom(t *testing.T) {
	s := navigation.NewStack()

	got, ok := navigation.From(s)
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = navigation.From("not a stack")
	require.False(t, ok)

	var nilStack *navigation.Stack
	_, ok = navigation.From(nilStack)
	require.False(t, ok)

	_, ok = navigation.From(nil)
	require.False(t, ok)
}
