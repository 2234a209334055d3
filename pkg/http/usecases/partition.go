package usecases

import (
	"context"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/netlist"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
	"go.uber.org/zap"
)

type PartitionService struct {
	log           *zap.Logger
	netlistParser *netlist.Parser
	workers       int
	maxVertices   int
}

// NewPartitionService serves requests with workers goroutines per swap selection. Graphs with more than
// maxVertices vertices are rejected before they are built, 0 disables the limit.
func NewPartitionService(log *zap.Logger, workers, maxVertices int) (*PartitionService, error) {
	parser, err := netlist.NewParser(log)
	if err != nil {
		return nil, err
	}
	return &PartitionService{
		log:           log,
		netlistParser: parser,
		workers:       workers,
		maxVertices:   maxVertices,
	}, nil
}

func (ps *PartitionService) PartitionEdges(ctx context.Context, vertices []int64, edges []datastructure.Edge,
	passes int, orderByCost bool) (*partitioner.Result, error) {
	el := datastructure.NewEdgeList(vertices, edges)
	if err := ps.checkSize(el.CountVertices(), len(el.Edges)); err != nil {
		return nil, err
	}
	return ps.partition(ctx, el, passes, orderByCost)
}

func (ps *PartitionService) PartitionNetlist(ctx context.Context, input string, passes int,
	orderByCost bool) (*partitioner.Result, error) {
	file, err := ps.netlistParser.ParseString(input)
	if err != nil {
		return nil, err
	}
	if err := ps.checkSize(file.Size()); err != nil {
		return nil, err
	}
	return ps.partition(ctx, file.ToEdgeList(), passes, orderByCost)
}

// checkSize bounds the vertex count and the number of connections handed to the graph builder. A simple graph on
// maxVertices vertices has at most maxVertices*(maxVertices-1)/2 edges.
func (ps *PartitionService) checkSize(vertices, connections int) error {
	if ps.maxVertices <= 0 {
		return nil
	}
	if vertices > ps.maxVertices {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "graph has %d vertices, limit is %d",
			vertices, ps.maxVertices)
	}
	if maxEdges := ps.maxVertices * (ps.maxVertices - 1) / 2; connections > maxEdges {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "input has %d connections, limit is %d",
			connections, maxEdges)
	}
	return nil
}

func (ps *PartitionService) partition(ctx context.Context, el *datastructure.EdgeList, passes int,
	orderByCost bool) (*partitioner.Result, error) {
	graph, err := datastructure.BuildGraphFromEdgeList(el)
	if err != nil {
		return nil, err
	}
	if passes <= 0 {
		passes = pkg.DEFAULT_PASSES
	}

	kl := partitioner.NewKernighanLin(graph, ps.log,
		partitioner.WithPasses(passes),
		partitioner.WithWorkers(ps.workers),
		partitioner.WithOrderByCost(orderByCost),
	)
	return kl.PartitionContext(ctx)
}
