package cmd

import (
	"fmt"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a netlist or OSM file into an edge list",
	Long: `Expand the input (any format accepted by partition) into an edge list file.
An output name ending in .bz2 is compressed.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().String("format", FORMAT_AUTO, "input format: auto, netlist, edges, osm")
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !cmd.Flags().Changed("format") && viper.IsSet("INPUT_FORMAT") {
		format = viper.GetString("INPUT_FORMAT")
	}

	el, err := loadEdgeList(args[0], format, log)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}
	if err := datastructure.WriteEdgeListFile(args[1], el); err != nil {
		return fmt.Errorf("error writing %s: %w", args[1], err)
	}

	log.Sugar().Infof("wrote %d vertices and %d edges to %s", len(el.VertexIDs), len(el.Edges), args[1])
	return nil
}
