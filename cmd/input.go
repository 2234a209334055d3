package cmd

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/netlist"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/osmparser"
	"go.uber.org/zap"
)

const (
	FORMAT_AUTO    = "auto"
	FORMAT_NETLIST = "netlist"
	FORMAT_EDGES   = "edges"
	FORMAT_OSM     = "osm"
)

// detectFormat guesses the input format from the file extension, ignoring a trailing .bz2.
func detectFormat(filename string) string {
	name := strings.TrimSuffix(strings.ToLower(filename), ".bz2")
	switch {
	case strings.HasSuffix(name, ".net"), strings.HasSuffix(name, ".netlist"):
		return FORMAT_NETLIST
	case strings.HasSuffix(name, ".pbf"):
		return FORMAT_OSM
	default:
		return FORMAT_EDGES
	}
}

func loadEdgeList(filename, format string, log *zap.Logger) (*datastructure.EdgeList, error) {
	if format == "" || format == FORMAT_AUTO {
		format = detectFormat(filename)
	}
	log.Sugar().Infof("reading %s as %s", filename, format)

	switch format {
	case FORMAT_NETLIST:
		parser, err := netlist.NewParser(log)
		if err != nil {
			return nil, err
		}
		return parser.ParseFile(filename)
	case FORMAT_OSM:
		return osmparser.NewOSMParser().Parse(filename, log)
	case FORMAT_EDGES:
		return datastructure.ReadEdgeListFile(filename)
	default:
		return nil, fmt.Errorf("unknown input format %q (want %s, %s, %s or %s)",
			format, FORMAT_AUTO, FORMAT_NETLIST, FORMAT_EDGES, FORMAT_OSM)
	}
}
