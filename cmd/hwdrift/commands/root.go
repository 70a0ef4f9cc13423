package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hwdrift/hwdrift/internal/app"
	"github.com/hwdrift/hwdrift/internal/config"
	"github.com/hwdrift/hwdrift/internal/hardware"
	"github.com/hwdrift/hwdrift/internal/inventory"
	"github.com/hwdrift/hwdrift/internal/logger"
	"github.com/hwdrift/hwdrift/pkg/types"
)

var (
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hwdrift",
	Short: "Hardware identifier inventory and drift detection",
	Long: `hwdrift inventories a machine's hardware identifiers (serials, UUIDs,
MAC addresses, monitor and GPU IDs), persists them as a baseline, and
detects drift against that baseline — the tell-tale of tampering,
re-imaging, or component swaps.

Running with no arguments opens the interactive view:

  hwdrift              # interactive tabbed view
  hwdrift scan         # one-shot inventory dump
  hwdrift export       # write the baseline export
  hwdrift diff         # compare current hardware to the baseline
  hwdrift lock         # firmware lock-state conclusions
  hwdrift history      # previously exported snapshots`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.New(cfg, log, hardware.NewWMIProvider())
		return a.Run(cmd.Context())
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hwdrift/config.yaml)")
	rootCmd.PersistentFlags().String("export-file", "", "baseline export file (default serials_export.txt)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	viper.BindPFlag("export_path", rootCmd.PersistentFlags().Lookup("export-file"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newDiffCommand())
	rootCmd.AddCommand(newLockCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newVersionCommand())
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	log = logger.NewLogrus(cfg.LogLevel)
	return nil
}

// collectSnapshot pings the provider and builds the current snapshot. A
// failed ping is the only fatal condition; degraded fields come back as
// data.
func collectSnapshot(ctx context.Context) (*types.Snapshot, error) {
	provider := hardware.NewWMIProvider()
	if err := provider.Ping(ctx); err != nil {
		return nil, fmt.Errorf("hardware inventory provider unavailable: %w", err)
	}
	return inventory.NewBuilder(provider, log).Build(ctx), nil
}
