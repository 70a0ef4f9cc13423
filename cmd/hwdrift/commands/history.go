package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hwdrift/hwdrift/internal/history"
	"github.com/hwdrift/hwdrift/internal/output"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously exported snapshots",
		Long: `List snapshots recorded in the local export history, newest first.
The history is informational; diffing always runs against the baseline
export file.`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum entries to show")
	cmd.AddCommand(newHistoryShowCommand())
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	cmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	return cmd
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	outputFlag, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(outputFlag)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history id %q", args[0])
	}

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("open export history: %w", err)
	}
	defer hist.Close()

	snap, err := hist.Load(cmd.Context(), id)
	if err != nil {
		return err
	}
	return renderSnapshot(snap, format)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("open export history: %w", err)
	}
	defer hist.Close()

	entries, err := hist.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No exports recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAPTURED\tHOST\tFIELDS\tSNAPSHOT")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			e.ID,
			e.CapturedAt.Format("2006-01-02 15:04:05"),
			e.Hostname,
			e.FieldCount,
			e.SnapshotID,
		)
	}
	return w.Flush()
}
