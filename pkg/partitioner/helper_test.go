package partitioner

import (
	"testing"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func edges(pairs ...[2]int64) []datastructure.Edge {
	es := make([]datastructure.Edge, len(pairs))
	for i, p := range pairs {
		es[i] = datastructure.NewEdge(p[0], p[1])
	}
	return es
}

func buildGraph(t *testing.T, pairs ...[2]int64) *datastructure.Graph {
	t.Helper()
	graph, err := datastructure.BuildGraph(edges(pairs...))
	require.NoError(t, err)
	return graph
}

func buildGraphWithIDs(t *testing.T, ids []int64, pairs ...[2]int64) *datastructure.Graph {
	t.Helper()
	graph, err := datastructure.BuildGraphWithVertices(ids, edges(pairs...))
	require.NoError(t, err)
	return graph
}

// randomGraph has vertex ids 0..n-1 (in that order) and up to m random edges.
func randomGraph(t *testing.T, seed uint64, n, m int) *datastructure.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i)
	}
	es := make([]datastructure.Edge, 0, m)
	for len(es) < m {
		u, v := rng.Int63n(int64(n)), rng.Int63n(int64(n))
		if u == v {
			continue
		}
		es = append(es, datastructure.NewEdge(u, v))
	}

	graph, err := datastructure.BuildGraphWithVertices(ids, es)
	require.NoError(t, err)
	return graph
}

func splitPartition(t *testing.T, graph *datastructure.Graph) *Partition {
	t.Helper()
	p := NewPartition(graph)
	require.NoError(t, p.InitialSplit(graph.GetVerticeIds()))
	return p
}

func index(t *testing.T, graph *datastructure.Graph, id int64) datastructure.Index {
	t.Helper()
	u, ok := graph.IndexOf(id)
	require.True(t, ok, "vertex %d not in graph", id)
	return u
}
