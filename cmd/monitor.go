package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/productdevbook/connwatch/internal/config"
	"github.com/productdevbook/connwatch/internal/keys"
	"github.com/productdevbook/connwatch/internal/logs"
	"github.com/productdevbook/connwatch/internal/monitor"
	"github.com/productdevbook/connwatch/internal/render"
	"github.com/productdevbook/connwatch/internal/resolver"
	"github.com/productdevbook/connwatch/internal/scanner"
	"github.com/productdevbook/connwatch/internal/services"
	"github.com/productdevbook/connwatch/internal/view"
)

const (
	bannerPause     = time.Second
	resolverTimeout = time.Second
)

var (
	filterFlag  string
	sortFlag    string
	processFlag string
	noDNS       bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&filterFlag, "filter", "", "Initial status filter (ALL, ESTABLISHED, TIME_WAIT, CLOSE_WAIT, LISTEN)")
	f.StringVar(&sortFlag, "sort", "", "Initial sort column (pid, process, status, local, remote)")
	f.StringVar(&processFlag, "process", "", "Only show processes fuzzily matching this name")
	f.BoolVar(&noDNS, "no-dns", false, "Show remote IPs without reverse DNS")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	log := logs.WithComponent("cmd")

	cfg, err := config.NewStore().Load()
	if err != nil {
		log.WithError(err).Warn("config unreadable, using defaults")
		cfg = config.Default()
	}
	if len(args) == 1 {
		cfg.Interval = parseInterval(args[0], cfg.Interval, cmd.ErrOrStderr())
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	state, err := cfg.ViewState()
	if err != nil {
		return err
	}
	state.Query = processFlag

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		printBanner(out)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(bannerPause):
		}
	}

	input, err := keys.Open(os.Stdin)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer input.Close()

	var (
		hosts monitor.Hostnames = monitor.Literal{}
		res   *resolver.Resolver
	)
	if cfg.ResolveDNS {
		res = resolver.New(nil)
		res.Start(ctx)
		hosts = res
	}

	collector := &monitor.Collector{
		Scanner:   scanner.New(),
		Hostnames: hosts,
		Services:  services.Load(),
	}
	renderer := render.New(out, render.NewTerminal(os.Stdout), keys.DefaultKeyMap(), render.WithCRLF(input.Raw()))
	m := monitor.New(collector, renderer, input, time.Duration(cfg.Interval)*time.Second, state)

	log.WithFields(logrus.Fields{
		"interval": cfg.Interval,
		"filter":   state.Filter(),
		"sort":     state.Sort(),
		"dns":      cfg.ResolveDNS,
	}).Info("monitor configured")

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancel()
		return m.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if res != nil && !res.Shutdown(resolverTimeout) {
			log.Warn("resolver still busy at exit")
		}
		return nil
	})
	err = g.Wait()

	if cerr := input.Close(); cerr != nil {
		log.WithError(cerr).Warn("restore terminal")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nMonitoring stopped.")
	return nil
}

// parseInterval reads the positional refresh interval. Anything that is
// not a positive integer falls back to def with a warning on w.
func parseInterval(arg string, def int, w io.Writer) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Fprintf(w, "Invalid refresh interval %q. Using default (%d seconds).\n", arg, def)
		return def
	}
	return n
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("filter") {
		cfg.Filter = filterFlag
	}
	if f.Changed("sort") {
		cfg.Sort = sortFlag
	}
	if f.Changed("no-dns") {
		cfg.ResolveDNS = !noDNS
	}
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "TCP Connection Monitor")
	fmt.Fprintln(w, "Note: May require administrator/root privileges for full process information.")
	fmt.Fprintf(w, "Filters: %s\n", strings.Join(view.Filters, ", "))
	fmt.Fprintln(w, "DNS names will resolve in the background...")
	fmt.Fprintln(w)
}
