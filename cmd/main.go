package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/elorank/internal/adapters/report"
	app "github.com/okian/elorank/internal/app"
	"github.com/okian/elorank/internal/config"
	"github.com/okian/elorank/pkg/logger"
	"github.com/okian/elorank/pkg/metrics"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one rating run and returns the process exit code. The report
// goes to stdout; logs and diagnostics go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("elorank", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		input       = fs.String("input", config.DefaultInput, "Path of the pairwise comparison CSV")
		kFactor     = fs.Float64("k", config.DefaultKFactor, "K-factor: maximum rating swing per match")
		initial     = fs.Float64("initial", config.DefaultInitialRating, "Rating assigned to each participant on first sight")
		top         = fs.Int("top", 0, "Print only the first N standings (0 prints all)")
		format      = fs.String("format", config.DefaultFormat, "Report format: text or json")
		logLevel    = fs.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
		metricsFile = fs.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: elorank [options]\n\n"+
			"Computes sequential Elo ratings from a CSV of pairwise judgements\n"+
			"(columns model_left, model_right, winner) and prints them highest first.\n\n"+
			"Options (override ELO_* env vars and the ELO_CONFIG YAML file):\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	// Load configuration (defaults -> optional file -> env), then explicit flags.
	cfg, err := config.Load(ctx)
	if err != nil {
		fail(stderr, err)
		return exitError
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "k":
			cfg.KFactor = *kFactor
		case "initial":
			cfg.InitialRating = *initial
		case "top":
			cfg.Top = *top
		case "format":
			cfg.Format = *format
		case "log-level":
			cfg.LogLevel = *logLevel
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		}
	})
	if err := cfg.Validate(); err != nil {
		fail(stderr, err)
		return exitError
	}

	if err := logger.InitWriter(stderr); err != nil {
		fail(stderr, err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	mm := metrics.NewManager()
	svc := app.New(
		app.WithLogger(log),
		app.WithMetrics(mm),
		app.WithOutput(stdout),
		app.WithKFactor(cfg.KFactor),
		app.WithInitialRating(cfg.InitialRating),
		app.WithFormat(report.Format(cfg.Format)),
		app.WithTop(cfg.Top),
	)

	_, runErr := svc.Run(ctx, cfg.Input)

	// Metrics are written for failed runs too so errors_total is visible.
	if cfg.MetricsFile != "" {
		if err := mm.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "writing metrics file failed", logger.Error(err))
		}
	}

	if runErr != nil {
		fail(stderr, runErr)
		return exitError
	}
	return exitOK
}

// fail prints a one-line diagnostic.
func fail(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "error: %v\n", err)
}
