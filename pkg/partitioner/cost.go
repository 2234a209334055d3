package partitioner

import (
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
)

/*
vertexCost. +1 for every neighbour in the other group (a cut edge that moving u would remove),
-1 for every neighbour in the same group (an uncut edge that moving u would cut).

the result is the reduction in cut edges from flipping u alone. it is never cached: a swap changes the cost of
both swapped vertices and of all their neighbours.
*/
func vertexCost(graph *datastructure.Graph, labels []pkg.Group, u datastructure.Index) int {
	cost := 0
	group := labels[u]
	graph.ForEachNeighbor(u, func(v datastructure.Index) {
		if labels[v] != group {
			cost++
		} else {
			cost--
		}
	})
	return cost
}

// cutSize counts edges whose endpoints carry different labels.
func cutSize(graph *datastructure.Graph, labels []pkg.Group) int {
	cut := 0
	graph.ForEachEdge(func(u, v datastructure.Index) {
		if labels[u] != labels[v] {
			cut++
		}
	})
	return cut
}
