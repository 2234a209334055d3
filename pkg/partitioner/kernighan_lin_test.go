package partitioner

import (
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKernighanLinNoImprovementPossible(t *testing.T) {
	graph := buildGraph(t, [2]int64{1, 2}, [2]int64{3, 4}, [2]int64{2, 3})
	kl := NewKernighanLin(graph, zap.NewNop())
	assert.Equal(t, pkg.INITIALIZING, kl.GetState())

	result, err := kl.Partition()
	require.NoError(t, err)
	assert.Equal(t, pkg.CONVERGED, kl.GetState())

	assert.Equal(t, -2, result.InitialCost)
	assert.Equal(t, -2, result.Cost)
	assert.Equal(t, 1, result.CutSize)
	assert.Equal(t, []int64{1, 2}, result.GroupA)
	assert.Equal(t, []int64{3, 4}, result.GroupB)
	assert.Equal(t, []int{-2}, result.Improvements)

	// the single round swaps 2 and 3 and makes things worse
	require.Len(t, result.Swaps, 1)
	assert.Equal(t, SwapRecord{Pass: 1, Round: 1, A: 2, B: 3, Score: 0, TotalCost: 6}, result.Swaps[0])
	assert.Equal(t, 1, result.Rounds)
	assert.Equal(t, 1, result.Passes)

	assert.Equal(t, []VertexDetail{{ID: 2, Group: pkg.GROUP_A, Cost: 0}, {ID: 1, Group: pkg.GROUP_A, Cost: -1}},
		result.GetGroupDetail(pkg.GROUP_A))
	assert.Equal(t, -1, result.GetGroupCost(pkg.GROUP_B))
}

func TestKernighanLinImproves(t *testing.T) {
	el := datastructure.NewEdgeList([]int64{1, 2, 3, 4}, edges([2]int64{1, 4}, [2]int64{2, 3}))
	result, err := BisectEdgeList(el, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 4, result.InitialCost)
	assert.Equal(t, -4, result.Cost)
	assert.Equal(t, 0, result.CutSize)
	assert.Equal(t, []int64{2, 3}, result.GroupA)
	assert.Equal(t, []int64{1, 4}, result.GroupB)
	assert.Equal(t, []int{4, -4}, result.Improvements)
	assert.Equal(t, []SwapRecord{{Pass: 1, Round: 1, A: 1, B: 3, Score: 2, TotalCost: -4}}, result.Swaps)
}

func TestKernighanLinOddAndEmptyGraphs(t *testing.T) {
	t.Run("odd", func(t *testing.T) {
		result, err := BisectEdges(edges([2]int64{1, 2}, [2]int64{2, 3}), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, result.GroupA)
		assert.Equal(t, []int64{2, 3}, result.GroupB)
		assert.Equal(t, 0, result.Cost)
		assert.Equal(t, 0, result.Rounds)
		assert.Empty(t, result.Swaps)
	})

	t.Run("empty", func(t *testing.T) {
		result, err := BisectEdges(nil, zap.NewNop())
		require.NoError(t, err)
		assert.Empty(t, result.GroupA)
		assert.Empty(t, result.GroupB)
		assert.Equal(t, 0, result.Cost)
	})
}

func TestBisectEdgesRejectsSelfLoop(t *testing.T) {
	_, err := BisectEdges(edges([2]int64{1, 2}, [2]int64{3, 3}), zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrInput))
}

func checkRunInvariants(t *testing.T, graph *datastructure.Graph, result *Result) {
	t.Helper()

	// the snapshot cost strictly decreases on every replacement
	for i := 1; i < len(result.Improvements); i++ {
		assert.Less(t, result.Improvements[i], result.Improvements[i-1])
	}
	assert.Equal(t, result.Cost, result.Improvements[len(result.Improvements)-1])

	// best cost is the minimum over every state visited
	lowest := result.InitialCost
	for _, s := range result.Swaps {
		lowest = min(lowest, s.TotalCost)
	}
	assert.Equal(t, lowest, result.Cost)

	// a vertex is locked at most once per pass and the locked set respects its bound
	half := graph.NumberOfVertices() / 2
	lockedPerPass := make(map[int]map[int64]bool)
	for _, s := range result.Swaps {
		if lockedPerPass[s.Pass] == nil {
			lockedPerPass[s.Pass] = make(map[int64]bool)
		}
		locked := lockedPerPass[s.Pass]
		assert.False(t, locked[s.A], "vertex %d swapped twice in pass %d", s.A, s.Pass)
		assert.False(t, locked[s.B], "vertex %d swapped twice in pass %d", s.B, s.Pass)
		locked[s.A], locked[s.B] = true, true
	}
	for _, locked := range lockedPerPass {
		assert.LessOrEqual(t, len(locked), 2*(half/2))
	}

	assert.Equal(t, len(result.GroupA), half)
	assert.Equal(t, graph.NumberOfVertices()-half, len(result.GroupB))
	assert.Equal(t, 4*result.CutSize-2*graph.NumberOfEdges(), result.Cost)
}

func TestKernighanLinRandomGraphInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 6; seed++ {
		graph := randomGraph(t, seed, 50, 120)
		result, err := NewKernighanLin(graph, zap.NewNop()).Partition()
		require.NoError(t, err)

		assert.Equal(t, 12, result.Rounds)
		checkRunInvariants(t, graph, result)
	}
}

func TestKernighanLinIsDeterministic(t *testing.T) {
	graph := randomGraph(t, 11, 60, 150)

	opts := [][]Option{
		nil,
		{WithOrderByCost(true)},
		{WithShuffleSeed(99)},
		{WithPasses(4)},
	}
	for _, o := range opts {
		first, err := NewKernighanLin(graph, zap.NewNop(), o...).Partition()
		require.NoError(t, err)
		second, err := NewKernighanLin(graph, zap.NewNop(), o...).Partition()
		require.NoError(t, err)

		assert.Equal(t, first, second)
		checkRunInvariants(t, graph, first)
	}
}

func TestKernighanLinWorkersMatchSequential(t *testing.T) {
	for seed := uint64(20); seed <= 23; seed++ {
		graph := randomGraph(t, seed, 40, 100)

		sequential, err := NewKernighanLin(graph, zap.NewNop()).Partition()
		require.NoError(t, err)
		parallel, err := NewKernighanLin(graph, zap.NewNop(), WithWorkers(4)).Partition()
		require.NoError(t, err)

		assert.Equal(t, sequential, parallel)
	}
}

func TestKernighanLinPasses(t *testing.T) {
	graph := randomGraph(t, 5, 64, 160)

	single, err := NewKernighanLin(graph, zap.NewNop()).Partition()
	require.NoError(t, err)
	multi, err := NewKernighanLin(graph, zap.NewNop(), WithPasses(5)).Partition()
	require.NoError(t, err)

	assert.LessOrEqual(t, multi.Cost, single.Cost)
	assert.LessOrEqual(t, multi.Passes, 5)
	assert.GreaterOrEqual(t, multi.Passes, 1)
	// the first pass of a multi-pass run is the single-pass run
	assert.Equal(t, single.Swaps, multi.Swaps[:len(single.Swaps)])
	checkRunInvariants(t, graph, multi)
}

func TestKernighanLinShuffledSplit(t *testing.T) {
	graph := randomGraph(t, 8, 30, 60)

	result, err := NewKernighanLin(graph, zap.NewNop(), WithShuffleSeed(7)).Partition()
	require.NoError(t, err)
	checkRunInvariants(t, graph, result)

	other, err := NewKernighanLin(graph, zap.NewNop(), WithShuffleSeed(8)).Partition()
	require.NoError(t, err)
	checkRunInvariants(t, graph, other)
}

func TestKernighanLinCanceled(t *testing.T) {
	graph := randomGraph(t, 3, 40, 80)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	kl := NewKernighanLin(graph, zap.NewNop())
	result, err := kl.PartitionContext(ctx)
	assert.Nil(t, result)
	assert.Equal(t, context.Canceled, err)
	assert.NotEqual(t, pkg.CONVERGED, kl.GetState())

	// a live context does not change the outcome
	withCtx, err := NewKernighanLin(graph, zap.NewNop()).PartitionContext(context.Background())
	require.NoError(t, err)
	plain, err := NewKernighanLin(graph, zap.NewNop()).Partition()
	require.NoError(t, err)
	assert.Equal(t, plain, withCtx)
}

func TestKernighanLinOrderByCost(t *testing.T) {
	// group A starts as [1 2 3 4] with costs 0 0 1 1: sorted by cost it becomes [3 4 1 2]
	graph := buildGraphWithIDs(t, []int64{1, 2, 3, 4, 5, 6, 7, 8},
		[2]int64{1, 5}, [2]int64{2, 6}, [2]int64{3, 7}, [2]int64{4, 8}, [2]int64{1, 2}, [2]int64{7, 8})

	p := splitPartition(t, graph)
	sorted, err := p.SortedByCost(pkg.GROUP_A)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 1, 2}, graph.GetExternalIDs(sorted))
	assert.Equal(t, []int64{1, 2, 3, 4}, graph.GetExternalIDs(p.GroupA()))

	want := []SwapRecord{
		{Pass: 1, Round: 1, A: 3, B: 5, Score: 2, TotalCost: -4},
		{Pass: 1, Round: 2, A: 4, B: 6, Score: 2, TotalCost: -12},
	}

	// the stable descending sort keeps the first maximum of vertex order in front, so both orders pick the
	// same pair every round
	for _, orderByCost := range []bool{false, true} {
		result, err := NewKernighanLin(graph, zap.NewNop(), WithOrderByCost(orderByCost)).Partition()
		require.NoError(t, err)

		assert.Equal(t, want, result.Swaps, "order by cost %v", orderByCost)
		assert.Equal(t, []int{4, -4, -12}, result.Improvements)
		assert.Equal(t, []int64{1, 2, 5, 6}, result.GroupA)
		assert.Equal(t, []int64{3, 4, 7, 8}, result.GroupB)
		assert.Equal(t, 0, result.CutSize)
	}
}
