package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	OUTPUT_TEXT = "text"
	OUTPUT_JSON = "json"
	OUTPUT_DOT  = "dot"
)

var partitionCmd = &cobra.Command{
	Use:   "partition <file>",
	Short: "Bisect a netlist, edge list or OSM road network",
	Long: `Read a graph, split its vertices into two halves with Kernighan-Lin and print
the best partition found.

Input formats (--format):
  netlist  lines of "net<name>: id id ...", every net becomes a clique
  edges    lines of "u v", a single id declares an isolated vertex
  osm      OpenStreetMap .osm.pbf, highway ways become edges
  auto     pick one from the file extension (default)

Files ending in .bz2 are decompressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPartition,
}

func init() {
	rootCmd.AddCommand(partitionCmd)

	flags := partitionCmd.Flags()
	flags.String("format", FORMAT_AUTO, "input format: auto, netlist, edges, osm")
	flags.StringP("output", "o", OUTPUT_TEXT, "output format: text, json, dot")
	flags.String("out-file", "", "write the result to this file instead of stdout")
	flags.Int("passes", pkg.DEFAULT_PASSES, "maximum number of improvement passes")
	flags.Int("workers", pkg.DEFAULT_WORKERS, "goroutines scanning swap candidates")
	flags.Bool("order-by-cost", false, "keep groups sorted by descending cost before each swap selection")
	flags.Int64("shuffle-seed", pkg.NO_SHUFFLE, "shuffle the initial split with this seed (negative keeps input order)")

	_ = viper.BindPFlag("INPUT_FORMAT", flags.Lookup("format"))
	_ = viper.BindPFlag("OUTPUT_FORMAT", flags.Lookup("output"))
	_ = viper.BindPFlag("PASSES", flags.Lookup("passes"))
	_ = viper.BindPFlag("WORKERS", flags.Lookup("workers"))
	_ = viper.BindPFlag("ORDER_BY_COST", flags.Lookup("order-by-cost"))
	_ = viper.BindPFlag("SHUFFLE_SEED", flags.Lookup("shuffle-seed"))
}

func runPartition(cmd *cobra.Command, args []string) error {
	filename := args[0]
	output := viper.GetString("OUTPUT_FORMAT")
	if output != OUTPUT_TEXT && output != OUTPUT_JSON && output != OUTPUT_DOT {
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", output, OUTPUT_TEXT, OUTPUT_JSON, OUTPUT_DOT)
	}

	el, err := loadEdgeList(filename, viper.GetString("INPUT_FORMAT"), log)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", filename, err)
	}
	graph, err := datastructure.BuildGraphFromEdgeList(el)
	if err != nil {
		return fmt.Errorf("error building graph from %s: %w", filename, err)
	}
	log.Sugar().Infof("graph built: %d vertices, %d edges", graph.NumberOfVertices(), graph.NumberOfEdges())

	kl := partitioner.NewKernighanLin(graph, log,
		partitioner.WithPasses(viper.GetInt("PASSES")),
		partitioner.WithWorkers(viper.GetInt("WORKERS")),
		partitioner.WithOrderByCost(viper.GetBool("ORDER_BY_COST")),
		partitioner.WithShuffleSeed(viper.GetInt64("SHUFFLE_SEED")),
	)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := kl.PartitionContext(ctx)
	if err != nil {
		return fmt.Errorf("error partitioning %s: %w", filename, err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if outFile, _ := cmd.Flags().GetString("out-file"); outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return writeResult(w, output, graph, result, graphName(filename))
}

func writeResult(w io.Writer, output string, graph *datastructure.Graph, result *partitioner.Result, name string) error {
	switch output {
	case OUTPUT_JSON:
		return partitioner.WriteJSON(w, result)
	case OUTPUT_DOT:
		buf, err := partitioner.MarshalDOT(graph, result, name)
		if err != nil {
			return err
		}
		_, err = w.Write(append(buf, '\n'))
		return err
	default:
		return partitioner.WriteText(w, result)
	}
}

// graphName turns a file name into a DOT identifier.
func graphName(filename string) string {
	base := filepath.Base(filename)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, base)
}
