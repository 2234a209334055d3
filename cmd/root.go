package cmd

import (
	"fmt"
	"os"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/logger"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/logger/config"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "klpart",
	Short: "klpart - Kernighan-Lin bisection of netlists and graphs",
	Long: `klpart splits the vertices of an undirected graph into two equal halves,
minimising the number of edges between them with the Kernighan-Lin heuristic.

Examples:
  klpart partition circuit.net                 # Bisect a netlist
  klpart partition graph.txt.bz2 -o json       # Bisect a compressed edge list
  klpart partition jogja.osm.pbf -o dot > g.dot
  klpart convert circuit.net circuit.edges.bz2 # Expand a netlist into an edge list
  klpart serve                                 # Run the HTTP API`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := util.ReadConfig(cfgFile); err != nil {
			return err
		}
		if verbose {
			viper.Set("LOG_LEVEL", config.DEBUG_LEVEL)
		}

		var err error
		log, err = logger.New()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./data/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
