package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productdevbook/connwatch/internal/config"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		arg      string
		want     int
		wantWarn bool
	}{
		{"5", 5, false},
		{"1", 1, false},
		{"abc", 2, true},
		{"0", 2, true},
		{"-3", 2, true},
		{"1.5", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.want, parseInterval(tt.arg, 2, &buf))
			if tt.wantWarn {
				assert.Contains(t, buf.String(), "Using default (2 seconds)")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	filterFlag, sortFlag, noDNS = "", "", false

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&filterFlag, "filter", "", "")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "")
	cmd.Flags().BoolVar(&noDNS, "no-dns", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplyFlagsOverridesOnlyChanged(t *testing.T) {
	cfg := &config.Config{Interval: 3, Filter: "LISTEN", Sort: "pid", ResolveDNS: true}
	applyFlags(newFlagCommand(t, "--sort", "remote"), cfg)

	assert.Equal(t, "LISTEN", cfg.Filter)
	assert.Equal(t, "remote", cfg.Sort)
	assert.True(t, cfg.ResolveDNS)
	assert.Equal(t, 3, cfg.Interval)
}

func TestApplyFlagsNoDNS(t *testing.T) {
	cfg := config.Default()
	applyFlags(newFlagCommand(t, "--no-dns", "--filter", "all"), cfg)

	assert.False(t, cfg.ResolveDNS)
	assert.Equal(t, "all", cfg.Filter)
	assert.NoError(t, cfg.Validate())
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf)
	assert.Contains(t, buf.String(), "TCP Connection Monitor")
	assert.Contains(t, buf.String(), "ESTABLISHED")
}
