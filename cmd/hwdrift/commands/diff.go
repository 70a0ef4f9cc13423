package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwdrift/hwdrift/internal/differ"
	"github.com/hwdrift/hwdrift/internal/output"
	"github.com/hwdrift/hwdrift/internal/storage"
)

func newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare current hardware identifiers against the baseline",
		Long: `Collect the hardware identifiers and classify every field against the
baseline export: unchanged, changed, new, or missing. Exit code 1 when
drift is detected, so the command is scriptable.`,
		Example: `  hwdrift diff
  hwdrift diff --output json
  hwdrift diff --export-file /srv/baselines/host42.txt`,
		RunE: runDiff,
	}

	cmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	cmd.Flags().Bool("exit-code", false, "exit 1 when drift is detected")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		return err
	}
	exitCode, _ := cmd.Flags().GetBool("exit-code")

	baseline, err := storage.Read(cfg.ExportPath)
	if errors.Is(err, storage.ErrNoBaseline) {
		return fmt.Errorf("no baseline to compare against; run 'hwdrift export' first")
	}
	if errors.Is(err, storage.ErrMalformed) {
		return fmt.Errorf("baseline is malformed, re-export to repair it: %w", err)
	}
	if err != nil {
		return err
	}

	snapshot, err := collectSnapshot(cmd.Context())
	if err != nil {
		return err
	}

	report, err := differ.New().Compare(snapshot, baseline)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		data, err := output.MarshalJSON(report)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	case output.FormatYAML:
		data, err := output.MarshalYAML(report)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	default:
		renderer := output.NewTableRenderer(cfg.NoColor)
		os.Stdout.Write(renderer.FormatDiffReport(report))
	}

	if exitCode && report.HasDrift() {
		os.Exit(1)
	}
	return nil
}
