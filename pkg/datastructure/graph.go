package datastructure

import (
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
)

type Index uint32

// Edge is an undirected connection between two vertex ids. It is only used to build a Graph.
type Edge struct {
	Left  int64
	Right int64
}

func NewEdge(left, right int64) Edge {
	return Edge{
		Left:  left,
		Right: right,
	}
}

// EdgeList is the raw output of an input parser: vertex ids in first-occurrence order plus the connections between them.
type EdgeList struct {
	VertexIDs []int64
	Edges     []Edge
}

func NewEdgeList(vertexIDs []int64, edges []Edge) *EdgeList {
	return &EdgeList{
		VertexIDs: vertexIDs,
		Edges:     edges,
	}
}

// CountVertices returns the number of distinct ids in the list, the size of the graph it builds.
func (el *EdgeList) CountVertices() int {
	seen := make(map[int64]struct{}, len(el.VertexIDs))
	for _, id := range el.VertexIDs {
		seen[id] = struct{}{}
	}
	for _, e := range el.Edges {
		seen[e.Left] = struct{}{}
		seen[e.Right] = struct{}{}
	}
	return len(seen)
}

type Vertex struct {
	id        int64
	index     Index
	neighbors []Index
}

func newVertex(id int64, index Index) *Vertex {
	return &Vertex{
		id:        id,
		index:     index,
		neighbors: make([]Index, 0),
	}
}

func (v *Vertex) GetID() int64 {
	return v.id
}

func (v *Vertex) GetIndex() Index {
	return v.index
}

func (v *Vertex) GetDegree() int {
	return len(v.neighbors)
}

// Graph owns every vertex. Adjacency is stored as arena indices so vertices never own each other.
type Graph struct {
	vertices []*Vertex
	indexOf  map[int64]Index
	numEdges int
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetID(u Index) int64 {
	return g.vertices[u].id
}

func (g *Graph) IndexOf(id int64) (Index, bool) {
	u, ok := g.indexOf[id]
	return u, ok
}

// GetNeighbors returns a copy of the adjacency list of u.
func (g *Graph) GetNeighbors(u Index) []Index {
	neighbors := make([]Index, len(g.vertices[u].neighbors))
	copy(neighbors, g.vertices[u].neighbors)
	return neighbors
}

func (g *Graph) ForEachNeighbor(u Index, handle func(v Index)) {
	for _, v := range g.vertices[u].neighbors {
		handle(v)
	}
}

func (g *Graph) ForEachVertices(handle func(v *Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}

// ForEachEdge visits every undirected edge once, with u < v.
func (g *Graph) ForEachEdge(handle func(u, v Index)) {
	for _, vertex := range g.vertices {
		for _, v := range vertex.neighbors {
			if vertex.index < v {
				handle(vertex.index, v)
			}
		}
	}
}

func (g *Graph) GetVerticeIds() []Index {
	ids := make([]Index, len(g.vertices))
	for i := range g.vertices {
		ids[i] = Index(i)
	}
	return ids
}

func (g *Graph) GetExternalIDs(indices []Index) []int64 {
	ids := make([]int64, len(indices))
	for i, u := range indices {
		ids[i] = g.vertices[u].id
	}
	return ids
}

// GraphBuilder creates one vertex per distinct id (in first-occurrence order) and links edges symmetrically.
type GraphBuilder struct {
	vertices []*Vertex
	indexOf  map[int64]Index
	links    map[uint64]struct{}
	numEdges int
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0),
		indexOf:  make(map[int64]Index),
		links:    make(map[uint64]struct{}),
	}
}

func (gb *GraphBuilder) AddVertex(id int64) (Index, error) {
	if id < 0 {
		return 0, util.WrapErrorf(nil, util.ErrInput, "vertex id %d is negative", id)
	}
	if u, ok := gb.indexOf[id]; ok {
		return u, nil
	}
	u := Index(len(gb.vertices))
	gb.vertices = append(gb.vertices, newVertex(id, u))
	gb.indexOf[id] = u
	return u, nil
}

// AddEdge links left and right. A repeated pair is a no-op, a self-loop is rejected.
func (gb *GraphBuilder) AddEdge(left, right int64) error {
	if left == right {
		return util.WrapErrorf(nil, util.ErrInput, "self-loop on vertex %d", left)
	}
	u, err := gb.AddVertex(left)
	if err != nil {
		return err
	}
	v, err := gb.AddVertex(right)
	if err != nil {
		return err
	}

	key := linkKey(u, v)
	if _, exists := gb.links[key]; exists {
		return nil
	}
	gb.links[key] = struct{}{}

	gb.vertices[u].neighbors = append(gb.vertices[u].neighbors, v)
	gb.vertices[v].neighbors = append(gb.vertices[v].neighbors, u)
	gb.numEdges++
	return nil
}

func (gb *GraphBuilder) Build() *Graph {
	return &Graph{
		vertices: gb.vertices,
		indexOf:  gb.indexOf,
		numEdges: gb.numEdges,
	}
}

func linkKey(u, v Index) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(u)<<32 | uint64(v)
}

func BuildGraph(edges []Edge) (*Graph, error) {
	return BuildGraphWithVertices(nil, edges)
}

// BuildGraphWithVertices registers ids first (so isolated vertices exist and keep their order) and then the edges.
func BuildGraphWithVertices(ids []int64, edges []Edge) (*Graph, error) {
	gb := NewGraphBuilder()
	for _, id := range ids {
		if _, err := gb.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for i, e := range edges {
		if err := gb.AddEdge(e.Left, e.Right); err != nil {
			return nil, util.WrapErrorf(err, util.ErrInput, "edge %d (%d, %d)", i, e.Left, e.Right)
		}
	}
	return gb.Build(), nil
}

func BuildGraphFromEdgeList(el *EdgeList) (*Graph, error) {
	return BuildGraphWithVertices(el.VertexIDs, el.Edges)
}
