package controllers

import (
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
)

type partitionRequest struct {
	Vertices    []int64    `json:"vertices" validate:"omitempty,dive,min=0"`
	Edges       [][2]int64 `json:"edges" validate:"required_without=Netlist"`
	Netlist     string     `json:"netlist" validate:"required_without=Edges,excluded_with=Edges"`
	Passes      int        `json:"passes" validate:"omitempty,min=1,max=64"`
	OrderByCost bool       `json:"order_by_cost"`
}

func (r partitionRequest) edgeList() []datastructure.Edge {
	edges := make([]datastructure.Edge, len(r.Edges))
	for i, e := range r.Edges {
		edges[i] = datastructure.NewEdge(e[0], e[1])
	}
	return edges
}

type vertexCost struct {
	ID   int64 `json:"id"`
	Cost int   `json:"cost"`
}

type partitionResponse struct {
	GroupA       []int64                  `json:"group_a"`
	GroupB       []int64                  `json:"group_b"`
	Cost         int                      `json:"cost"`
	CutSize      int                      `json:"cut_size"`
	InitialCost  int                      `json:"initial_cost"`
	Passes       int                      `json:"passes"`
	Rounds       int                      `json:"rounds"`
	CostsA       []vertexCost             `json:"costs_a"`
	CostsB       []vertexCost             `json:"costs_b"`
	Swaps        []partitioner.SwapRecord `json:"swaps"`
	Improvements []int                    `json:"improvements"`
}

func NewPartitionResponse(result *partitioner.Result) partitionResponse {
	return partitionResponse{
		GroupA:       result.GroupA,
		GroupB:       result.GroupB,
		Cost:         result.Cost,
		CutSize:      result.CutSize,
		InitialCost:  result.InitialCost,
		Passes:       result.Passes,
		Rounds:       result.Rounds,
		CostsA:       newVertexCosts(result.GetGroupDetail(pkg.GROUP_A)),
		CostsB:       newVertexCosts(result.GetGroupDetail(pkg.GROUP_B)),
		Swaps:        result.Swaps,
		Improvements: result.Improvements,
	}
}

func newVertexCosts(details []partitioner.VertexDetail) []vertexCost {
	costs := make([]vertexCost, len(details))
	for i, d := range details {
		costs[i] = vertexCost{ID: d.ID, Cost: d.Cost}
	}
	return costs
}
