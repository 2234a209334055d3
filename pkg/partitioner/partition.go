package partitioner

import (
	"sort"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
)

// Partition assigns every vertex of a graph to group A or B and keeps the two ordered group views.
type Partition struct {
	graph     *datastructure.Graph
	labels    []pkg.Group
	groupA    []datastructure.Index
	groupB    []datastructure.Index
	imbalance int // allowed |B| - |A|: 0 for an even vertex count, 1 for an odd one
}

func NewPartition(graph *datastructure.Graph) *Partition {
	return &Partition{
		graph:     graph,
		labels:    make([]pkg.Group, graph.NumberOfVertices()),
		groupA:    make([]datastructure.Index, 0),
		groupB:    make([]datastructure.Index, 0),
		imbalance: graph.NumberOfVertices() % 2,
	}
}

/*
InitialSplit. the first floor(n/2) vertices of order go to group A, the rest to group B.
an odd vertex count leaves group B with exactly one extra vertex.
*/
func (p *Partition) InitialSplit(order []datastructure.Index) error {
	n := p.graph.NumberOfVertices()
	if len(order) != n {
		return util.WrapErrorf(nil, util.ErrInvariant, "split order has %d vertices, graph has %d", len(order), n)
	}

	for i := range p.labels {
		p.labels[i] = pkg.UNASSIGNED
	}
	for i, u := range order {
		if int(u) >= n {
			return util.WrapErrorf(nil, util.ErrInvariant, "split order references unknown vertex index %d", u)
		}
		if p.labels[u] != pkg.UNASSIGNED {
			return util.WrapErrorf(nil, util.ErrInvariant, "vertex %d appears twice in split order", p.graph.GetID(u))
		}
		if i < n/2 {
			p.labels[u] = pkg.GROUP_A
		} else {
			p.labels[u] = pkg.GROUP_B
		}
	}

	return p.RefreshViews()
}

// Swap exchanges the groups of a and b. It does not refresh the group views.
func (p *Partition) Swap(a, b datastructure.Index) error {
	ga, gb := p.labels[a], p.labels[b]
	if ga == pkg.UNASSIGNED || gb == pkg.UNASSIGNED {
		return util.WrapErrorf(nil, util.ErrInvalidSwap, "cannot swap unassigned vertices %d and %d",
			p.graph.GetID(a), p.graph.GetID(b))
	}
	if ga == gb {
		return util.WrapErrorf(nil, util.ErrInvalidSwap, "vertices %d and %d are both in group %s",
			p.graph.GetID(a), p.graph.GetID(b), ga)
	}

	p.labels[a], p.labels[b] = ga.Other(), gb.Other()
	return nil
}

// RefreshViews rebuilds GroupA and GroupB from the labels, in vertex order.
func (p *Partition) RefreshViews() error {
	p.groupA = p.groupA[:0]
	p.groupB = p.groupB[:0]

	for u, group := range p.labels {
		switch group {
		case pkg.GROUP_A:
			p.groupA = append(p.groupA, datastructure.Index(u))
		case pkg.GROUP_B:
			p.groupB = append(p.groupB, datastructure.Index(u))
		default:
			return util.WrapErrorf(nil, util.ErrInvariant, "vertex %d has no group", p.graph.GetID(datastructure.Index(u)))
		}
	}

	if len(p.groupB)-len(p.groupA) != p.imbalance {
		return util.WrapErrorf(nil, util.ErrInvariant, "unbalanced groups: |A|=%d |B|=%d", len(p.groupA), len(p.groupB))
	}
	return nil
}

// SortViewsByCost reorders both views by descending cost in place. Ties keep their current relative order.
func (p *Partition) SortViewsByCost() {
	p.sortByCost(p.groupA)
	p.sortByCost(p.groupB)
}

// SortedByCost returns a copy of the group's view ordered by descending cost.
func (p *Partition) SortedByCost(group pkg.Group) ([]datastructure.Index, error) {
	view, err := p.view(group)
	if err != nil {
		return nil, err
	}
	sorted := make([]datastructure.Index, len(view))
	copy(sorted, view)
	p.sortByCost(sorted)
	return sorted, nil
}

func (p *Partition) sortByCost(view []datastructure.Index) {
	costs := make(map[datastructure.Index]int, len(view))
	for _, u := range view {
		costs[u] = p.Cost(u)
	}
	sort.SliceStable(view, func(i, j int) bool {
		return costs[view[i]] > costs[view[j]]
	})
}

// TotalCost sums the cost of every member of group.
func (p *Partition) TotalCost(group pkg.Group) (int, error) {
	view, err := p.view(group)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, u := range view {
		total += p.Cost(u)
	}
	return total, nil
}

// OverallCost is TotalCost(A) + TotalCost(B). With the +1/-1 convention it equals 4*cut - 2*|E|.
func (p *Partition) OverallCost() int {
	costA, _ := p.TotalCost(pkg.GROUP_A)
	costB, _ := p.TotalCost(pkg.GROUP_B)
	return costA + costB
}

func (p *Partition) CutSize() int {
	return cutSize(p.graph, p.labels)
}

func (p *Partition) Cost(u datastructure.Index) int {
	return vertexCost(p.graph, p.labels, u)
}

func (p *Partition) Group(u datastructure.Index) pkg.Group {
	return p.labels[u]
}

// GroupA returns the current view of group A. Callers must not modify it.
func (p *Partition) GroupA() []datastructure.Index {
	return p.groupA
}

// GroupB returns the current view of group B. Callers must not modify it.
func (p *Partition) GroupB() []datastructure.Index {
	return p.groupB
}

func (p *Partition) view(group pkg.Group) ([]datastructure.Index, error) {
	switch group {
	case pkg.GROUP_A:
		return p.groupA, nil
	case pkg.GROUP_B:
		return p.groupB, nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrInput, "no such group: %s", group)
	}
}

func (p *Partition) takeSnapshot(cost int) snapshot {
	return newSnapshot(p.labels, cost)
}

// restore loads labels from s and rebuilds the views.
func (p *Partition) restore(s snapshot) error {
	copy(p.labels, s.labels)
	return p.RefreshViews()
}
