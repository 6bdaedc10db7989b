package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/productdevbook/connwatch/internal/monitor"
	"github.com/productdevbook/connwatch/internal/scanner"
	"github.com/productdevbook/connwatch/internal/services"
	"github.com/productdevbook/connwatch/internal/tracker"
	"github.com/productdevbook/connwatch/internal/view"
)

var (
	jsonOutput bool
	listState  string
	listSort   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print current TCP connections once",
	Long:  `List the host's TCP connections with their processes as a table or JSON, then exit.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listState, "state", "ALL", "Only show connections in this state")
	listCmd.Flags().StringVar(&listSort, "sort", "process", "Sort column")
}

func runList(cmd *cobra.Command, args []string) error {
	state, err := view.New(listState, listSort)
	if err != nil {
		return err
	}

	c := &monitor.Collector{
		Scanner:   scanner.New(),
		Hostnames: monitor.Literal{},
		Services:  services.Load(),
	}
	records, err := c.Collect(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to scan connections: %w", err)
	}

	records = selectRecords(records, state)
	out := cmd.OutOrStdout()

	if len(records) == 0 {
		if jsonOutput {
			fmt.Fprintln(out, "[]")
		} else {
			fmt.Fprintln(out, "No connections found.")
		}
		return nil
	}

	if jsonOutput {
		return printJSON(out, records)
	}

	return printTable(out, records)
}

// selectRecords applies the state filter and sort column to records.
func selectRecords(records []tracker.Record, s view.State) []tracker.Record {
	rows := make([]tracker.Row, len(records))
	for i, rec := range records {
		rows[i] = tracker.Row{Record: rec}
	}
	rows = view.Project(rows, s)

	out := make([]tracker.Record, len(rows))
	for i, row := range rows {
		out[i] = row.Record
	}
	return out
}

func printJSON(w io.Writer, records []tracker.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func printTable(w io.Writer, records []tracker.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tPROCESS\tSTATUS\tLOCAL\tREMOTE")
	fmt.Fprintln(tw, "---\t-------\t------\t-----\t------")

	for _, r := range records {
		pid := "-"
		if r.PID > 0 {
			pid = strconv.Itoa(r.PID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", pid, r.Process, r.Status, r.Local, r.RemoteDisplay)
	}

	return tw.Flush()
}
