package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hwdrift/hwdrift/internal/output"
	"github.com/hwdrift/hwdrift/pkg/types"
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Collect and print the hardware identifier inventory",
		Long: `Collect all hardware identifiers once and print them. Identifiers the
provider cannot retrieve appear as N/A with the failure reason; a partial
collection is normal, not an error.`,
		Example: `  hwdrift scan
  hwdrift scan --output json
  hwdrift scan --output yaml > inventory.yaml`,
		RunE: runScan,
	}

	cmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		return err
	}

	snapshot, err := collectSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	return renderSnapshot(snapshot, format)
}

func renderSnapshot(snapshot *types.Snapshot, format output.Format) error {
	switch format {
	case output.FormatJSON:
		data, err := output.MarshalJSON(snapshot)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	case output.FormatYAML:
		data, err := output.MarshalYAML(snapshot)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	default:
		renderer := output.NewTableRenderer(cfg.NoColor)
		os.Stdout.Write(renderer.FormatSnapshot(snapshot))
	}
	return nil
}
