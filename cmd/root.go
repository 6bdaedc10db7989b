package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/productdevbook/connwatch/internal/logs"
	"github.com/productdevbook/connwatch/internal/scanner"
)

var (
	version = "0.1.0"
	logFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "connwatch [interval]",
	Short: "Live view of TCP connections and their processes",
	Long: `connwatch shows the host's TCP connections with their owning processes,
refreshed every interval seconds (default 2). New connections are highlighted
green and connections that just closed stay one more refresh in red.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logs.Close()
	},
	RunE: runMonitor,
}

func Execute() {
	if code := execute(rootCmd, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// execute runs c and returns the process exit code, printing elevation
// guidance to stderr when connections could not be enumerated.
func execute(c *cobra.Command, stderr io.Writer) int {
	err := c.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, scanner.ErrPermission) {
		fmt.Fprintln(stderr, scanner.ElevationHint())
	}
	logs.Close()
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append debug logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.Version = version
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logs.SetDebug(debug)
	if err := logs.SetOutputFile(logFile); err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logs.WithComponent("cmd").WithField("command", cmd.Name()).Debug("starting")
	return nil
}
