package partitioner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// WriteText dumps both groups with the cost of every vertex, the overall cost per group and the swap history.
func WriteText(w io.Writer, result *Result) error {
	var sb strings.Builder

	sb.WriteString("----------------Final Arrangement-----------------\n")
	for _, group := range []pkg.Group{pkg.GROUP_A, pkg.GROUP_B} {
		fmt.Fprintf(&sb, "-- Group %s --\n", group)
		for _, d := range result.GetGroupDetail(group) {
			fmt.Fprintf(&sb, "%d\t: %d\n", d.ID, d.Cost)
		}
		fmt.Fprintf(&sb, "Overall Cost %d\n", result.GetGroupCost(group))
	}
	fmt.Fprintf(&sb, "-- Group A ids: %s\n", joinIDs(result.GroupA))
	fmt.Fprintf(&sb, "-- Group B ids: %s\n", joinIDs(result.GroupB))
	fmt.Fprintf(&sb, "-- Overall Cost = %d (initial %d), cut edges = %d --\n", result.Cost, result.InitialCost, result.CutSize)

	if len(result.Swaps) > 0 {
		sb.WriteString("-------------------Swaps---------------------------\n")
		for _, s := range result.Swaps {
			fmt.Fprintf(&sb, "pass %d round %d: %d <-> %d score %d total %d\n",
				s.Pass, s.Round, s.A, s.B, s.Score, s.TotalCost)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func WriteJSON(w io.Writer, result *Result) error {
	buf, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	_, err = w.Write(buf)
	return err
}

func SaveResultToFile(filename string, result *Result) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(filename, ".json") {
		return WriteJSON(f, result)
	}
	return WriteText(f, result)
}

var groupColors = map[pkg.Group]string{
	pkg.GROUP_A: "lightblue",
	pkg.GROUP_B: "salmon",
}

type dotNode struct {
	id    int64
	group pkg.Group
	cost  int
}

func (n dotNode) ID() int64 {
	return n.id
}

func (n dotNode) DOTID() string {
	return strconv.FormatInt(n.id, 10)
}

func (n dotNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "style", Value: "filled"},
		{Key: "fillcolor", Value: groupColors[n.group]},
		{Key: "xlabel", Value: strconv.Itoa(n.cost)},
	}
}

type dotEdge struct {
	from, to dotNode
}

func (e dotEdge) From() graph.Node {
	return e.from
}

func (e dotEdge) To() graph.Node {
	return e.to
}

func (e dotEdge) ReversedEdge() graph.Edge {
	return dotEdge{from: e.to, to: e.from}
}

func (e dotEdge) Attributes() []encoding.Attribute {
	if e.from.group != e.to.group {
		return []encoding.Attribute{{Key: "style", Value: "dashed"}, {Key: "color", Value: "red"}}
	}
	return nil
}

// MarshalDOT renders g as an undirected Graphviz graph: nodes filled by group and labelled with their cost,
// cut edges dashed.
func MarshalDOT(g *datastructure.Graph, result *Result, name string) ([]byte, error) {
	nodes := make(map[int64]dotNode, g.NumberOfVertices())
	for _, group := range []pkg.Group{pkg.GROUP_A, pkg.GROUP_B} {
		for _, d := range result.GetGroupDetail(group) {
			nodes[d.ID] = dotNode{id: d.ID, group: group, cost: d.Cost}
		}
	}

	ug := simple.NewUndirectedGraph()
	g.ForEachVertices(func(v *datastructure.Vertex) {
		n, ok := nodes[v.GetID()]
		if !ok {
			n = dotNode{id: v.GetID(), group: pkg.UNASSIGNED}
		}
		nodes[v.GetID()] = n
		ug.AddNode(n)
	})
	g.ForEachEdge(func(u, v datastructure.Index) {
		ug.SetEdge(dotEdge{from: nodes[g.GetID(u)], to: nodes[g.GetID(v)]})
	})

	return dot.Marshal(ug, name, "", "  ")
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
