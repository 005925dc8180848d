package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/randalmurphal/opcalc/pkg/opcalc"
	"github.com/randalmurphal/opcalc/pkg/opcalc/config"
	"github.com/randalmurphal/opcalc/pkg/opcalc/history"
	"github.com/randalmurphal/opcalc/pkg/opcalc/suite"
)

// Exit codes.
const (
	ExitSuccess  = 0
	ExitFailure  = 1 // evaluation failed or a suite case did not match
	ExitUsage    = 2
	ExitConfig   = 3
	ExitInternal = 4
)

// usageError is an invalid invocation.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

const usage = `usage: opcalc [flags] <command> [args]

commands:
  triple <a> <op> <b>    evaluate a token triple, rounded to 2 places
  typed <a> <op> <b>     evaluate with integral/fractional operand inference
  run <suite-file>       run a YAML or JSON case suite
  history                list recorded runs, or one run with -run
                         (needs the sqlite or postgres history driver; the
                         memory driver keeps records for one invocation only)

flags:
`

// globalFlags are accepted before the command.
type globalFlags struct {
	configPath string
	envPath    string
	logLevel   string
	logFormat  string
	runID      string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("opcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var g globalFlags
	fs.StringVar(&g.configPath, "config", "", "YAML or JSON settings file")
	fs.StringVar(&g.envPath, "env", "", ".env file to load (default ./.env)")
	fs.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&g.logFormat, "log-format", "", "log format: text or json")
	fs.StringVar(&g.runID, "run-id", "", "run ID for recorded evaluations")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ExitUsage
	}

	settings, err := loadSettings(g)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitConfig
	}

	code, err := dispatch(ctx, settings, g, fs.Arg(0), fs.Args()[1:], stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			return ExitUsage
		}
		return ExitInternal
	}
	return code
}

// loadSettings layers defaults, the .env file, the config file, the
// environment and finally the command-line flags.
func loadSettings(g globalFlags) (config.Settings, error) {
	var envFiles []string
	if g.envPath != "" {
		envFiles = append(envFiles, g.envPath)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return config.Settings{}, err
	}

	settings, err := config.Load(g.configPath)
	if err != nil {
		return config.Settings{}, err
	}

	if g.logLevel != "" {
		settings.LogLevel = g.logLevel
	}
	if g.logFormat != "" {
		settings.LogFormat = g.logFormat
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, fmt.Errorf("invalid flags: %w", err)
	}
	return settings, nil
}

func dispatch(ctx context.Context, settings config.Settings, g globalFlags, cmd string, args []string, stdout, stderr io.Writer) (int, error) {
	switch cmd {
	case "triple", "typed", "run", "history":
	default:
		return 0, usagef("unknown command %q", cmd)
	}
	if cmd == "history" && settings.History.Driver == config.DriverMemory {
		return 0, usagef("history: the memory driver keeps records for one invocation only; use sqlite or postgres")
	}

	store, closeStore, err := openStore(ctx, settings.History)
	if err != nil {
		return 0, err
	}
	defer closeStore()

	opts := []opcalc.Option{
		opcalc.WithLogger(settings.NewLogger(stderr)),
		opcalc.WithMetrics(settings.Metrics),
		opcalc.WithTracing(settings.Tracing),
		opcalc.WithRunID(g.runID),
	}
	if store != nil {
		opts = append(opts, opcalc.WithHistory(store))
	}
	ev := opcalc.New(opts...)

	switch cmd {
	case "triple":
		if len(args) == 0 {
			return 0, usagef("triple: expression required")
		}
		return printResult(stdout, ev.Triple(ctx, strings.Join(args, " "))), nil
	case "typed":
		if len(args) != 3 {
			return 0, usagef("typed: expected <a> <op> <b>, got %d arguments", len(args))
		}
		return printResult(stdout, ev.Typed(ctx, args[0], args[1], args[2])), nil
	case "run":
		return runSuite(ctx, ev, args, stdout, stderr)
	default:
		if store == nil {
			return 0, errors.New("history: no history store configured (set history.driver)")
		}
		return showHistory(ctx, store, args, stdout, stderr)
	}
}

func printResult(w io.Writer, r opcalc.Result) int {
	fmt.Fprintln(w, r.String())
	if !r.OK() {
		return ExitFailure
	}
	return ExitSuccess
}

func runSuite(ctx context.Context, ev *opcalc.Evaluator, args []string, stdout, stderr io.Writer) (int, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showHidden := fs.Bool("show-hidden", false, "print details of hidden cases")
	if err := fs.Parse(args); err != nil {
		return 0, usagef("run: %v", err)
	}
	if fs.NArg() != 1 {
		return 0, usagef("run: expected one suite file")
	}

	s, err := suite.Load(fs.Arg(0))
	if err != nil {
		return 0, err
	}

	report, err := suite.Run(ctx, ev, s)
	if err != nil {
		return 0, err
	}

	results := report.Visible()
	if *showHidden {
		results = report.Results
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for _, res := range results {
		status := "FAIL"
		if res.Passed {
			status = "PASS"
		}
		if res.Case.Hidden && !*showHidden {
			fmt.Fprintf(tw, "%s\t%s\t(hidden)\n", status, res.Case.Name)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\texpected %s\tgot %s\n",
			status, res.Case.Name, caseInput(res.Case), res.Case.Expect, res.Actual)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	fmt.Fprintln(stdout, report.Summary())

	if !report.AllPassed() {
		return ExitFailure, nil
	}
	return ExitSuccess, nil
}

func caseInput(c suite.Case) string {
	if len(c.Args) == 0 {
		return c.Input
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}

func showHistory(ctx context.Context, store history.Store, args []string, stdout, stderr io.Writer) (int, error) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	runID := fs.String("run", "", "show the records of one run")
	del := fs.Bool("delete", false, "delete the run given by -run")
	if err := fs.Parse(args); err != nil {
		return 0, usagef("history: %v", err)
	}
	if *del && *runID == "" {
		return 0, usagef("history: -delete requires -run")
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)

	switch {
	case *del:
		if err := store.DeleteRun(ctx, *runID); err != nil {
			return 0, err
		}
		fmt.Fprintf(stdout, "deleted run %s\n", *runID)
		return ExitSuccess, nil

	case *runID != "":
		recs, err := store.List(ctx, *runID)
		if err != nil {
			return 0, err
		}
		fmt.Fprintln(tw, "SEQ\tEVALUATOR\tINPUT\tOUTPUT\tOUTCOME")
		for _, r := range recs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Seq, r.Evaluator, r.Input, r.Output, r.Outcome)
		}

	default:
		runs, err := store.Runs(ctx)
		if err != nil {
			return 0, err
		}
		fmt.Fprintln(tw, "RUN\tSTARTED\tEVALUATIONS\tFAILURES")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.RunID, r.Started.Format("2006-01-02 15:04:05"), r.Count, r.Failures)
		}
	}

	if err := tw.Flush(); err != nil {
		return 0, err
	}
	return ExitSuccess, nil
}

// openStore opens the configured history store. The returned close
// function is never nil.
func openStore(ctx context.Context, h config.HistorySettings) (history.Store, func(), error) {
	noop := func() {}

	switch h.Driver {
	case config.DriverNone, "":
		return nil, noop, nil

	case config.DriverMemory:
		store := history.NewMemoryStore()
		return store, func() { _ = store.Close() }, nil

	case config.DriverSQLite:
		store, err := history.NewSQLiteStore(h.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite history: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, h.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres history: %w", err)
		}
		var opts []history.PostgresOption
		if h.Table != "" {
			opts = append(opts, history.WithTableName(h.Table))
		}
		store := history.NewPostgresStore(pool, opts...)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("prepare postgres history: %w", err)
		}
		return store, func() {
			_ = store.Close()
			pool.Close()
		}, nil

	default:
		return nil, noop, fmt.Errorf("unsupported history driver %q", h.Driver)
	}
}
