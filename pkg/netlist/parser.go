package netlist

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
	"go.uber.org/zap"
)

type Parser struct {
	parser *participle.Parser[File]
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(NetlistLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser, logger: logger}, nil
}

func (p *Parser) Parse(r io.Reader) (*File, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInput, "netlist parse error")
	}
	return file, nil
}

func (p *Parser) ParseString(input string) (*File, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInput, "netlist parse error")
	}
	return file, nil
}

// ParseFile parses a netlist file, decompressing it first when the name ends with .bz2.
func (p *Parser) ParseFile(filename string) (*datastructure.EdgeList, error) {
	f, err := datastructure.OpenInput(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	file, err := p.Parse(f)
	if err != nil {
		return nil, err
	}
	el := file.ToEdgeList()
	p.logger.Sugar().Infof("parsed netlist %s: %d nets, %d components, %d connections",
		filename, len(file.Nets), len(el.VertexIDs), len(el.Edges))
	return el, nil
}

/*
ToEdgeList. expands every net into the pairwise connections between its pins: a net with pins p1..pk yields
(pi, pj) for every i < j. a pin repeated on the same net is counted once, so the expansion never produces
self-loops. vertex ids keep first-occurrence order over the whole file, including pins of single-pin nets.
*/
func (f *File) ToEdgeList() *datastructure.EdgeList {
	var (
		vertexIDs = make([]int64, 0)
		edges     = make([]datastructure.Edge, 0)
		seen      = make(map[int64]struct{})
	)

	for _, net := range f.Nets {
		pins := uniquePins(net.Pins)
		for _, pin := range pins {
			if _, ok := seen[pin]; !ok {
				seen[pin] = struct{}{}
				vertexIDs = append(vertexIDs, pin)
			}
		}
		for i := 0; i < len(pins); i++ {
			for j := i + 1; j < len(pins); j++ {
				edges = append(edges, datastructure.NewEdge(pins[i], pins[j]))
			}
		}
	}

	return datastructure.NewEdgeList(vertexIDs, edges)
}

// Size returns the number of distinct pins and the number of connections ToEdgeList would produce, without
// expanding anything.
func (f *File) Size() (pins, connections int) {
	seen := make(map[int64]struct{})
	for _, net := range f.Nets {
		unique := uniquePins(net.Pins)
		for _, pin := range unique {
			seen[pin] = struct{}{}
		}
		k := len(unique)
		connections += k * (k - 1) / 2
	}
	return len(seen), connections
}

func uniquePins(pins []int64) []int64 {
	set := make(map[int64]struct{}, len(pins))
	unique := make([]int64, 0, len(pins))
	for _, pin := range pins {
		if _, ok := set[pin]; ok {
			continue
		}
		set[pin] = struct{}{}
		unique = append(unique, pin)
	}
	return unique
}
