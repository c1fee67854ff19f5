package dag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.deps)
	assert.Empty(t, g.order)
	assert.Zero(t, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("1", "2", "3")
	assert.Equal(t, []string{"1"}, g.Nodes())
	assert.Equal(t, []string{"2", "3"}, g.Dependencies("1"))
	assert.True(t, g.Has("1"))
	assert.False(t, g.Has("2"), "dependencies are not nodes until added")

	g.AddNode("2")
	g.AddNode("1", "4") // Re-adding keeps position, replaces deps.
	assert.Equal(t, []string{"1", "2"}, g.Nodes())
	assert.Equal(t, []string{"4"}, g.Dependencies("1"))
	assert.Equal(t, 2, g.Len())
}

func TestUnion(t *testing.T) {
	a := New()
	a.AddNode("1", "2")
	b := New()
	b.AddNode("2", "1")
	b.AddNode("3")

	a.Union(b)
	assert.Equal(t, []string{"1", "2", "3"}, a.Nodes())
	assert.Equal(t, []string{"1"}, a.Dependencies("2"))
	assert.Equal(t, 3, a.Len())
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New().DetectCycles(nil))
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("1", "2", "3")
		g.AddNode("2", "3")
		g.AddNode("3", "4")
		g.AddNode("4")
		assert.NoError(t, g.DetectCycles(nil))
	})

	t.Run("unresolved edges are skipped", func(t *testing.T) {
		g := New()
		g.AddNode("1", "99", "2")
		g.AddNode("2", "98")
		assert.NoError(t, g.DetectCycles(nil))
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("1", "2")
		g.AddNode("2", "1")
		err := g.DetectCycles(nil)
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []string{"1", "2", "1"}, cycleErr.Path)
		assert.EqualError(t, err, "cycle detected: 1->2->1")
	})

	t.Run("self dependency is a cycle", func(t *testing.T) {
		g := New()
		g.AddNode("7", "7")
		var cycleErr *CycleError
		require.ErrorAs(t, g.DetectCycles(nil), &cycleErr)
		assert.Equal(t, []string{"7", "7"}, cycleErr.Path)
	})

	t.Run("longer cycle reports the full path", func(t *testing.T) {
		g := New()
		g.AddNode("1", "2")
		g.AddNode("2", "3")
		g.AddNode("3", "4")
		g.AddNode("4", "2")
		var cycleErr *CycleError
		require.ErrorAs(t, g.DetectCycles(nil), &cycleErr)
		assert.Equal(t, []string{"1", "2", "3", "4", "2"}, cycleErr.Path)
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		g := New()
		g.AddNode("1", "2", "3")
		g.AddNode("2", "4")
		g.AddNode("3", "4")
		g.AddNode("4")
		assert.NoError(t, g.DetectCycles(nil))
	})
}

func TestDetectCycles_VisitsEachEdgeOnce(t *testing.T) {
	g := New()
	g.AddNode("1", "2", "3", "2")
	g.AddNode("2", "3")
	g.AddNode("3", "404")
	g.AddNode("4", "1", "3")

	var visited [][2]string
	err := g.DetectCycles(func(from, to string) error {
		visited = append(visited, [2]string{from, to})
		return nil
	})
	require.NoError(t, err)

	// Unresolved edges (3->404) never reach the hook.
	assert.Equal(t, [][2]string{
		{"1", "2"}, {"2", "3"}, {"1", "3"}, {"1", "2"}, {"4", "1"}, {"4", "3"},
	}, visited)
}

func TestDetectCycles_VisitErrorStopsWalk(t *testing.T) {
	g := New()
	g.AddNode("1", "2")
	g.AddNode("2", "1")

	boom := errors.New("boom")
	err := g.DetectCycles(func(from, to string) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
