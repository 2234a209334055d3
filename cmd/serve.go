package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/http"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/http/usecases"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the partition HTTP API",
	Long: `Serve POST /api/partition and GET /healthz until interrupted.

Configuration keys: API_PORT, API_TIMEOUT, WORKERS, MAX_VERTICES.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.Int("port", 6060, "listen port")
	flags.Int("max-vertices", pkg.DEFAULT_MAX_VERTICES, "reject graphs with more vertices, 0 disables the limit")

	_ = viper.BindPFlag("API_PORT", flags.Lookup("port"))
	_ = viper.BindPFlag("MAX_VERTICES", flags.Lookup("max-vertices"))
}

func runServe(cmd *cobra.Command, args []string) error {
	viper.SetDefault("WORKERS", pkg.DEFAULT_WORKERS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	partitionService, err := usecases.NewPartitionService(log, viper.GetInt("WORKERS"), viper.GetInt("MAX_VERTICES"))
	if err != nil {
		return err
	}

	api := http.NewServer(log)
	if err := api.Use(ctx, log, partitionService); err != nil {
		return err
	}

	log.Info("klpart server stopped", zap.Error(ctx.Err()))
	return nil
}
