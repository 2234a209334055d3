package partitioner

import (
	"context"
	"errors"
	"sort"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

type options struct {
	passes      int
	workers     int
	orderByCost bool
	shuffleSeed int64
}

type Option func(*options)

// WithPasses sets the maximum number of passes. Each pass after the first restarts from the best partition
// found so far with an empty locked set. The run stops early after a pass without improvement.
func WithPasses(passes int) Option {
	return func(o *options) {
		if passes > 0 {
			o.passes = min(passes, pkg.MAX_PASSES)
		}
	}
}

// WithWorkers sets the number of goroutines used to scan swap candidates.
func WithWorkers(workers int) Option {
	return func(o *options) {
		if workers > 0 {
			o.workers = workers
		}
	}
}

// WithOrderByCost keeps both group views sorted by descending cost before every swap selection.
func WithOrderByCost(orderByCost bool) Option {
	return func(o *options) {
		o.orderByCost = orderByCost
	}
}

// WithShuffleSeed shuffles the vertex order used by the initial split. A negative seed keeps graph order.
func WithShuffleSeed(seed int64) Option {
	return func(o *options) {
		o.shuffleSeed = seed
	}
}

type KernighanLin struct {
	graph  *datastructure.Graph
	opts   options
	state  pkg.PartitionState
	logger *zap.Logger
}

func NewKernighanLin(graph *datastructure.Graph, logger *zap.Logger, opts ...Option) *KernighanLin {
	o := options{
		passes:      pkg.DEFAULT_PASSES,
		workers:     pkg.DEFAULT_WORKERS,
		shuffleSeed: pkg.NO_SHUFFLE,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &KernighanLin{
		graph:  graph,
		opts:   o,
		state:  pkg.INITIALIZING,
		logger: logger,
	}
}

func (kl *KernighanLin) GetState() pkg.PartitionState {
	return kl.state
}

/*
Partition. runs the Kernighan-Lin bisection:

 1. split the vertices in half (graph order, or shuffled order with WithShuffleSeed) and record the total cost
    as the first best snapshot.
 2. for up to floor(|A|/2) rounds pick the best unlocked swap, commit it, lock both vertices and recompute the
    total cost. a strictly lower total replaces the best snapshot.
 3. return the best snapshot, not the final state: later rounds may make the partition worse.

util.ErrNoCandidate ends a pass early. any other error is returned as is.
*/
func (kl *KernighanLin) Partition() (*Result, error) {
	return kl.PartitionContext(context.Background())
}

// PartitionContext is Partition with cancellation: ctx is checked before every round and its error is returned
// unwrapped.
func (kl *KernighanLin) PartitionContext(ctx context.Context) (*Result, error) {
	kl.state = pkg.SPLITTING

	p := NewPartition(kl.graph)
	if err := p.InitialSplit(kl.splitOrder()); err != nil {
		return nil, err
	}
	if kl.opts.orderByCost {
		p.SortViewsByCost()
	}

	initialCost := p.OverallCost()
	best := p.takeSnapshot(initialCost)
	result := &Result{
		InitialCost:  initialCost,
		Swaps:        make([]SwapRecord, 0),
		Improvements: []int{initialCost},
	}
	kl.logger.Sugar().Infof("initial split: |A|=%d |B|=%d, cost %d", len(p.GroupA()), len(p.GroupB()), initialCost)

	var (
		locked    = NewLockedSet(kl.graph.NumberOfVertices())
		selector  = NewSwapSelector(kl.opts.workers)
		maxRounds = len(p.GroupA()) / 2
	)

	kl.state = pkg.IMPROVING
	for pass := 1; pass <= kl.opts.passes; pass++ {
		if pass > 1 {
			if err := p.restore(best); err != nil {
				return nil, err
			}
			if kl.opts.orderByCost {
				p.SortViewsByCost()
			}
			locked.Reset()
		}

		improved := false
		for round := 1; round <= maxRounds; round++ {
			if err := ctx.Err(); err != nil {
				kl.logger.Sugar().Infof("partition canceled in pass %d round %d: %v", pass, round, err)
				return nil, err
			}
			swap, err := selector.BestSwap(p, locked)
			if errors.Is(err, util.ErrNoCandidate) {
				kl.logger.Debug("no swap candidate left", zap.Int("pass", pass), zap.Int("round", round))
				break
			}
			if err != nil {
				return nil, err
			}

			total, err := kl.commit(p, locked, swap)
			if err != nil {
				return nil, err
			}

			result.Rounds++
			result.Swaps = append(result.Swaps, SwapRecord{
				Pass:      pass,
				Round:     round,
				A:         kl.graph.GetID(swap.GetA()),
				B:         kl.graph.GetID(swap.GetB()),
				Score:     swap.GetScore(),
				TotalCost: total,
			})
			kl.logger.Debug("swap committed",
				zap.Int("pass", pass), zap.Int("round", round),
				zap.Int64("a", kl.graph.GetID(swap.GetA())), zap.Int64("b", kl.graph.GetID(swap.GetB())),
				zap.Int("score", swap.GetScore()), zap.Int("total_cost", total))

			if total < best.cost {
				best = p.takeSnapshot(total)
				result.Improvements = append(result.Improvements, total)
				improved = true
			}
		}
		result.Passes = pass

		kl.logger.Sugar().Infof("pass %d done, best cost %d", pass, best.cost)
		if !improved {
			break
		}
	}

	kl.state = pkg.CONVERGED
	kl.fillResult(result, best)
	kl.logger.Sugar().Infof("converged after %d rounds: cost %d, cut size %d", result.Rounds, result.Cost, result.CutSize)
	return result, nil
}

// commit applies swap, locks both vertices, refreshes the views and returns the new overall cost.
func (kl *KernighanLin) commit(p *Partition, locked *LockedSet, swap Swap) (int, error) {
	if err := p.Swap(swap.GetA(), swap.GetB()); err != nil {
		return 0, err
	}
	if err := locked.Lock(swap.GetA()); err != nil {
		return 0, err
	}
	if err := locked.Lock(swap.GetB()); err != nil {
		return 0, err
	}
	if err := p.RefreshViews(); err != nil {
		return 0, err
	}
	if kl.opts.orderByCost {
		p.SortViewsByCost()
	}
	return p.OverallCost(), nil
}

func (kl *KernighanLin) splitOrder() []datastructure.Index {
	order := kl.graph.GetVerticeIds()
	if kl.opts.shuffleSeed < 0 {
		return order
	}
	rng := rand.New(rand.NewSource(uint64(kl.opts.shuffleSeed)))
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// fillResult copies the best snapshot into result. group members are listed in vertex order, the per-vertex
// detail by descending cost.
func (kl *KernighanLin) fillResult(result *Result, best snapshot) {
	result.Cost = best.cost
	result.CutSize = cutSize(kl.graph, best.labels)
	result.GroupA = make([]int64, 0)
	result.GroupB = make([]int64, 0)
	result.detailA = make([]VertexDetail, 0)
	result.detailB = make([]VertexDetail, 0)

	for u, group := range best.labels {
		detail := VertexDetail{
			ID:    kl.graph.GetID(datastructure.Index(u)),
			Group: group,
			Cost:  vertexCost(kl.graph, best.labels, datastructure.Index(u)),
		}
		if group == pkg.GROUP_A {
			result.GroupA = append(result.GroupA, detail.ID)
			result.detailA = append(result.detailA, detail)
		} else {
			result.GroupB = append(result.GroupB, detail.ID)
			result.detailB = append(result.detailB, detail)
		}
	}

	byCost := func(details []VertexDetail) {
		sort.SliceStable(details, func(i, j int) bool {
			return details[i].Cost > details[j].Cost
		})
	}
	byCost(result.detailA)
	byCost(result.detailB)
}

// BisectEdges builds the graph from edges and partitions it.
func BisectEdges(edges []datastructure.Edge, logger *zap.Logger, opts ...Option) (*Result, error) {
	return BisectEdgeList(datastructure.NewEdgeList(nil, edges), logger, opts...)
}

func BisectEdgeList(el *datastructure.EdgeList, logger *zap.Logger, opts ...Option) (*Result, error) {
	graph, err := datastructure.BuildGraphFromEdgeList(el)
	if err != nil {
		return nil, err
	}
	logger.Sugar().Infof("graph built: %d vertices, %d edges", graph.NumberOfVertices(), graph.NumberOfEdges())

	return NewKernighanLin(graph, logger, opts...).Partition()
}
