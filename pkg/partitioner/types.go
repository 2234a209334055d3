package partitioner

import (
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
)

// Swap is a candidate exchange between a vertex of group A and a vertex of group B.
type Swap struct {
	a     datastructure.Index
	b     datastructure.Index
	score int // cost(a) + cost(b) before the exchange
}

func NewSwap(a, b datastructure.Index, score int) Swap {
	return Swap{a: a, b: b, score: score}
}

func (s Swap) GetA() datastructure.Index {
	return s.a
}

func (s Swap) GetB() datastructure.Index {
	return s.b
}

func (s Swap) GetScore() int {
	return s.score
}

// SwapRecord is a committed swap, expressed in external vertex ids.
type SwapRecord struct {
	Pass      int   `json:"pass"`
	Round     int   `json:"round"`
	A         int64 `json:"a"`
	B         int64 `json:"b"`
	Score     int   `json:"score"`
	TotalCost int   `json:"total_cost"`
}

type VertexDetail struct {
	ID    int64     `json:"id"`
	Group pkg.Group `json:"-"`
	Cost  int       `json:"cost"`
}

// snapshot is a copy of the group labels together with the total cost they produce.
type snapshot struct {
	labels []pkg.Group
	cost   int
}

func newSnapshot(labels []pkg.Group, cost int) snapshot {
	cp := make([]pkg.Group, len(labels))
	copy(cp, labels)
	return snapshot{labels: cp, cost: cost}
}

// Result is the best partition observed during a run.
type Result struct {
	GroupA       []int64      `json:"group_a"`
	GroupB       []int64      `json:"group_b"`
	Cost         int          `json:"cost"`
	CutSize      int          `json:"cut_size"`
	InitialCost  int          `json:"initial_cost"`
	Passes       int          `json:"passes"`
	Rounds       int          `json:"rounds"`
	Swaps        []SwapRecord `json:"swaps"`
	Improvements []int        `json:"improvements"`

	detailA []VertexDetail
	detailB []VertexDetail
}

// GetGroupDetail returns id and cost of every member of group, measured against the best labels.
func (r *Result) GetGroupDetail(group pkg.Group) []VertexDetail {
	switch group {
	case pkg.GROUP_A:
		return r.detailA
	case pkg.GROUP_B:
		return r.detailB
	default:
		return nil
	}
}

func (r *Result) GetGroupCost(group pkg.Group) int {
	total := 0
	for _, d := range r.GetGroupDetail(group) {
		total += d.Cost
	}
	return total
}
