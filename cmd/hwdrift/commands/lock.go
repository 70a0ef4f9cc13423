package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hwdrift/hwdrift/internal/lockstate"
	"github.com/hwdrift/hwdrift/internal/output"
)

func newLockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Infer the firmware lock state",
		Long: `Evaluate the firmware restriction heuristics over the current snapshot:
OEM lock, Secure Boot, TPM, and BIOS write protection. Each check yields
true, false, or unknown; inconsistent vendor reporting degrades to
unknown, never an error.`,
		RunE: runLock,
	}

	cmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func runLock(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		return err
	}

	snapshot, err := collectSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	report := lockstate.Evaluate(snapshot)

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
		os.Stdout.Write(renderer.FormatLockReport(&report))
	}
	return nil
}
