package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"orbital/internal/cli"
	"orbital/internal/daterange"
	"orbital/internal/export"
	"orbital/internal/filter"
	"orbital/internal/log"
	"orbital/internal/services"
	"orbital/internal/state"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return
	}
	fmt.Fprintln(os.Stderr, "orbital-cli:", err)
	os.Exit(1)
}

// run renders the dashboard once. Deferred cleanups always run before it
// returns; only main exits the process.
func run(args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("orbital-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		count    = fs.Int("count", 0, "number of transactions to generate (default TRANSACTION_COUNT)")
		seed     = fs.Uint64("seed", 0, "generator seed (default RANDOM_SEED, 0 picks one)")
		preset   = fs.String("preset", "", "date range preset: today, last7days, last30days, thisMonth, lastMonth")
		search   = fs.String("q", "", "global search term")
		page     = fs.Int("page", 0, "zero-based transactions page")
		pageSize = fs.Int("page-size", filter.DefaultPageSize, "transactions per page (5, 10, 20 or 50)")
		client   = fs.String("client", "", "client id whose preferences are used")
		theme    = fs.String("theme", "", "persist a theme before rendering: light, dark or system")
		csvPath  = fs.String("export", "", "also write the filtered transactions to this CSV file")
		verbose  = fs.Bool("v", false, "log to stderr at debug level")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}

	logCfg := log.ConfigFromSettings("warn", cfg.LogFormat, log.ComponentCLI)
	if *verbose {
		logCfg.Level = log.ParseLevel("debug")
	}
	logCfg.Output = stderr
	logger := log.New(logCfg)

	if *count > 0 {
		cfg.TransactionCount = *count
	}
	if *seed != 0 {
		cfg.RandomSeed = *seed
	}
	cfg.LoadingDelay = 0

	if err := filter.ValidatePageSize(*pageSize); err != nil {
		return fmt.Errorf("%w: %d (allowed: %v)", err, *pageSize, filter.PageSizes)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	store, err := cli.InitBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Cleanup(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close backend: %w", cerr))
		}
	}()

	prefs := services.NewPreferenceService(store.Store, logger)
	if *theme != "" {
		t, err := state.ParseTheme(*theme)
		if err != nil {
			return fmt.Errorf("%w: %q", err, *theme)
		}
		if _, err := prefs.Update(ctx, *client, state.SetTheme{Theme: t}); err != nil {
			return err
		}
	}
	p := prefs.Load(ctx, *client)

	now := time.Now()
	st := state.Default(now).WithPreferences(p)
	if *preset != "" {
		pr, err := daterange.ParsePreset(*preset)
		if err != nil {
			return fmt.Errorf("%w: %q", err, *preset)
		}
		st = state.Apply(st, state.SetPresetDateRange{Preset: pr, Now: now})
	}
	st = state.Apply(st, state.SetGlobalSearch{Term: *search})

	dashboard := cli.NewDashboard(cfg, func() time.Time { return now }, logger)
	q := filter.Query{
		Sort: filter.DefaultSort,
		Page: filter.Page{Index: *page, Size: *pageSize},
	}

	overview := dashboard.Overview(ctx, st)
	rows := dashboard.Transactions(ctx, st, q)

	renderer := cli.NewRenderer(state.Resolve(p.Theme, lipgloss.HasDarkBackground), now)
	fmt.Fprintln(stdout, renderer.Dashboard(overview, rows, st.GlobalSearch))

	if *csvPath != "" {
		selected := dashboard.Rows(st, q)
		if err := (&export.CSVWriter{}).WriteToFile(*csvPath, selected); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Wrote %d transactions to %s\n", len(selected), *csvPath)
	}
	return nil
}
