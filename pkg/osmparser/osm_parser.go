package osmparser

import (
	"context"
	"fmt"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// OsmParser turns the road ways of an openstreetmap extract into a connectivity edge list: every way node is
// a vertex (keyed by its osm node id) and every pair of consecutive nodes on a way is a connection.
type OsmParser struct {
	vertexIDs []int64
	seenNodes map[int64]struct{}
	edges     []datastructure.Edge
	links     map[[2]int64]struct{}
	countWays int
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		vertexIDs: make([]int64, 0),
		seenNodes: make(map[int64]struct{}),
		edges:     make([]datastructure.Edge, 0),
		links:     make(map[[2]int64]struct{}),
	}
}

func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.EdgeList, error) {
	f, err := datastructure.OpenInput(mapFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open osm file: %w", err)
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if !p.addWay(way) {
			continue
		}
		if p.countWays%LOG_EVERY_N_WAYS == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", p.countWays)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan osm file: %w", err)
	}

	logger.Sugar().Infof("parsed %s: %d ways, %d nodes, %d connections", mapFile, p.countWays, len(p.vertexIDs), len(p.edges))
	return p.EdgeList(), nil
}

// addWay records the nodes and connections of an accepted way. It reports whether the way was accepted.
func (p *OsmParser) addWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}
	p.countWays++

	for i, node := range way.Nodes {
		id := int64(node.ID)
		if _, ok := p.seenNodes[id]; !ok {
			p.seenNodes[id] = struct{}{}
			p.vertexIDs = append(p.vertexIDs, id)
		}
		if i == 0 {
			continue
		}

		prev := int64(way.Nodes[i-1].ID)
		if prev == id {
			continue
		}
		key := [2]int64{min(prev, id), max(prev, id)}
		if _, ok := p.links[key]; ok {
			continue
		}
		p.links[key] = struct{}{}
		p.edges = append(p.edges, datastructure.NewEdge(prev, id))
	}
	return true
}

func (p *OsmParser) EdgeList() *datastructure.EdgeList {
	return datastructure.NewEdgeList(p.vertexIDs, p.edges)
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := acceptedHighway[highway]; ok {
			return true
		}
	} else if junction != "" {
		return true
	}
	return false
}
