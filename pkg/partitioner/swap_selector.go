package partitioner

import (
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/concurrent"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
)

// LockedSet holds the vertices already committed in a swap during the current pass.
type LockedSet struct {
	locked []bool
	count  int
}

func NewLockedSet(numberOfVertices int) *LockedSet {
	return &LockedSet{locked: make([]bool, numberOfVertices)}
}

func (ls *LockedSet) Lock(u datastructure.Index) error {
	if ls.locked[u] {
		return util.WrapErrorf(nil, util.ErrInvariant, "vertex index %d locked twice", u)
	}
	ls.locked[u] = true
	ls.count++
	return nil
}

func (ls *LockedSet) IsLocked(u datastructure.Index) bool {
	return ls.locked[u]
}

func (ls *LockedSet) Len() int {
	return ls.count
}

func (ls *LockedSet) Reset() {
	for i := range ls.locked {
		ls.locked[i] = false
	}
	ls.count = 0
}

type candidate struct {
	u    datastructure.Index
	cost int
}

type rowBest struct {
	swap  Swap
	found bool
}

// SwapSelector finds the best swap of a round. With more than one worker the rows of group A are scanned
// concurrently; the result is the same as the sequential scan.
type SwapSelector struct {
	workers int
}

func NewSwapSelector(workers int) *SwapSelector {
	if workers < 1 {
		workers = 1
	}
	return &SwapSelector{workers: workers}
}

/*
BestSwap. scans every pair (a in A, b in B) with neither endpoint locked and returns the pair with the strictly
largest cost(a) + cost(b). ties go to the first pair met with A as the outer loop and B as the inner loop, both in
current view order.

returns util.ErrNoCandidate when one of the groups has no unlocked member.
*/
func (ss *SwapSelector) BestSwap(p *Partition, locked *LockedSet) (Swap, error) {
	candA := unlockedCandidates(p, p.GroupA(), locked)
	candB := unlockedCandidates(p, p.GroupB(), locked)
	if len(candA) == 0 || len(candB) == 0 {
		return Swap{}, util.WrapErrorf(nil, util.ErrNoCandidate, "unlocked vertices: |A|=%d |B|=%d", len(candA), len(candB))
	}

	scanRow := func(a candidate) rowBest {
		best := rowBest{}
		for _, b := range candB {
			score := a.cost + b.cost
			if !best.found || score > best.swap.score {
				best = rowBest{swap: NewSwap(a.u, b.u, score), found: true}
			}
		}
		return best
	}

	var rows []rowBest
	if ss.workers > 1 && len(candA) > 1 {
		rows = concurrent.Map[candidate, rowBest](ss.workers, candA, scanRow)
	} else {
		rows = make([]rowBest, len(candA))
		for i, a := range candA {
			rows[i] = scanRow(a)
		}
	}

	best := rowBest{}
	for _, row := range rows {
		if row.found && (!best.found || row.swap.score > best.swap.score) {
			best = row
		}
	}
	return best.swap, nil
}

// BestSwap runs a sequential SwapSelector.
func BestSwap(p *Partition, locked *LockedSet) (Swap, error) {
	return NewSwapSelector(1).BestSwap(p, locked)
}

// unlockedCandidates evaluates the cost of every unlocked member of view, fresh for this round.
func unlockedCandidates(p *Partition, view []datastructure.Index, locked *LockedSet) []candidate {
	cands := make([]candidate, 0, len(view))
	for _, u := range view {
		if locked.IsLocked(u) {
			continue
		}
		cands = append(cands, candidate{u: u, cost: p.Cost(u)})
	}
	return cands
}
