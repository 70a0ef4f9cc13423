package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hwdrift/hwdrift/internal/history"
	"github.com/hwdrift/hwdrift/internal/storage"
)

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current identifiers as the baseline export",
		Long: `Collect the hardware identifiers and write them to the baseline export
file. The write is atomic: an interrupted export never corrupts an
existing baseline. The snapshot is also recorded in the local export
history.`,
		Example: `  hwdrift export
  hwdrift export --export-file /srv/baselines/host42.txt`,
		RunE: runExport,
	}
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	snapshot, err := collectSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	if err := storage.Write(snapshot, cfg.ExportPath); err != nil {
		return err
	}
	fmt.Printf("Exported %d fields to %s\n", snapshot.FieldCount(), cfg.ExportPath)

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.WithField("error", err.Error()).Warn("export history unavailable")
		return nil
	}
	defer hist.Close()

	if _, err := hist.Record(cmd.Context(), snapshot); err != nil {
		log.Error("history record failed", err)
		return nil
	}
	if cfg.HistoryKeep > 0 {
		if _, err := hist.Prune(cmd.Context(), cfg.HistoryKeep); err != nil {
			log.Error("history prune failed", err)
		}
	}
	return nil
}
