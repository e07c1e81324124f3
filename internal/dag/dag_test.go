package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("audio")
	assert.Len(t, g.nodes, 1)
	n, ok := g.nodes["audio"]
	require.True(t, ok)
	assert.Equal(t, "audio", n.id)
	assert.NotNil(t, n.deps)
	assert.NotNil(t, n.dependents)

	g.AddNode("audio") // idempotent
	assert.Len(t, g.nodes, 1)

	g.AddNode("speech")
	assert.Len(t, g.nodes, 2)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("audio")
		g.AddNode("speech")

		err := g.AddEdge("audio", "speech") // speech depends on audio
		require.NoError(t, err)

		deps, err := g.Dependencies("speech")
		require.NoError(t, err)
		assert.Equal(t, []string{"audio"}, deps)

		dependents, err := g.Dependents("audio")
		require.NoError(t, err)
		assert.Equal(t, []string{"speech"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.Error(t, err)

		err = g.AddEdge("a", "dne")
		assert.Error(t, err)

		err = g.AddEdge("a", "a")
		assert.Error(t, err)
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("dependencies come first", func(t *testing.T) {
		g := New()
		g.AddNode("network")
		g.AddNode("speech")
		g.AddNode("audio")
		require.NoError(t, g.AddEdge("audio", "speech"))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		require.Len(t, order, 3)

		pos := make(map[string]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		assert.Less(t, pos["audio"], pos["speech"], "audio must be ordered before its dependent")
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		build := func() *Graph {
			g := New()
			for _, id := range []string{"d", "b", "c", "a"} {
				g.AddNode(id)
			}
			require.NoError(t, g.AddEdge("a", "c"))
			require.NoError(t, g.AddEdge("b", "c"))
			return g
		}

		first, err := build().TopologicalOrder()
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			next, err := build().TopologicalOrder()
			require.NoError(t, err)
			assert.Equal(t, first, next)
		}
	})

	t.Run("cycle is reported with its path", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		_, err := g.TopologicalOrder()
		require.Error(t, err)

		var cyc *CycleError
		require.ErrorAs(t, err, &cyc)
		require.GreaterOrEqual(t, len(cyc.Path), 3)
		assert.Equal(t, cyc.Path[0], cyc.Path[len(cyc.Path)-1], "cycle path should close on its entry node")
		assert.Contains(t, err.Error(), "dependency cycle")
	})

	t.Run("empty graph", func(t *testing.T) {
		order, err := New().TopologicalOrder()
		require.NoError(t, err)
		assert.Empty(t, order)
	})
}
