package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/productdevbook/connwatch/internal/config"
)

var initConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Print where connwatch keeps its configuration and the values in effect. With --init, write the defaults to that file.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&initConfig, "init", false, "Write the default configuration if none exists")
}

func runConfig(cmd *cobra.Command, args []string) error {
	store := config.NewStore()
	out := cmd.OutOrStdout()

	if initConfig {
		if err := writeDefaults(store); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", store.Path())
	}

	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	printConfig(out, store.Path(), cfg)
	return nil
}

func writeDefaults(store config.Store) error {
	path := store.Path()
	if path == "" {
		return errors.New("no config location available")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := store.Save(config.Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func printConfig(w io.Writer, path string, cfg *config.Config) {
	if path == "" {
		path = "(none)"
	}
	fmt.Fprintf(w, "path:        %s\n", path)
	fmt.Fprintf(w, "interval:    %ds\n", cfg.Interval)
	fmt.Fprintf(w, "filter:      %s\n", cfg.Filter)
	fmt.Fprintf(w, "sort:        %s\n", cfg.Sort)
	fmt.Fprintf(w, "resolve dns: %t\n", cfg.ResolveDNS)
}
