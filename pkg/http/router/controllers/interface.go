package controllers

import (
	"context"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
)

type PartitionService interface {
	PartitionEdges(ctx context.Context, vertices []int64, edges []datastructure.Edge, passes int,
		orderByCost bool) (*partitioner.Result, error)
	PartitionNetlist(ctx context.Context, netlist string, passes int, orderByCost bool) (*partitioner.Result, error)
}
