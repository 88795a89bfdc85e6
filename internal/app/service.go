// Package app drives a rating run: read the match log, apply every match in
// order, and report the final standings.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/okian/elorank/internal/adapters/matchlog"
	"github.com/okian/elorank/internal/adapters/report"
	"github.com/okian/elorank/internal/domain/model"
	"github.com/okian/elorank/internal/domain/rating"
	"github.com/okian/elorank/pkg/logger"
	"github.com/okian/elorank/pkg/metrics"
)

// Service runs the batch pipeline. A Service is not safe for concurrent Runs.
type Service struct {
	// Rating parameters
	kFactor       float64
	initialRating float64

	// Report
	out    io.Writer
	format report.Format
	top    int

	// Observability
	logger  logger.Logger
	metrics *metrics.Manager
	now     func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithKFactor sets the K-factor. Non-positive values are ignored.
func WithKFactor(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.kFactor = k
		}
	}
}

// WithInitialRating sets the rating given to participants on first sight.
func WithInitialRating(r float64) Option {
	return func(s *Service) {
		s.initialRating = r
	}
}

// WithOutput sets where the report is written.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithFormat selects the report format.
func WithFormat(f report.Format) Option {
	return func(s *Service) {
		s.format = f
	}
}

// WithTop limits the report to the first n standings.
func WithTop(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.top = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager the run reports into.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		kFactor:       rating.DefaultKFactor,
		initialRating: rating.DefaultInitialRating,
		out:           os.Stdout,
		format:        report.FormatText,
		logger:        logger.Discard(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewManager()
	}
	return s
}

// Metrics returns the manager the service records into.
func (s *Service) Metrics() *metrics.Manager { return s.metrics }

// Run reads the match log at path, computes ratings and writes the report.
// Any error aborts the run before a report is written.
func (s *Service) Run(ctx context.Context, path string) (*rating.Table, error) {
	start := s.now()
	log := s.logger.With(logger.String("run_id", uuid.NewString()))

	log.Debug(ctx, "rating run started",
		logger.String("input", path),
		logger.Float64("k_factor", s.kFactor),
		logger.Float64("initial_rating", s.initialRating),
	)

	records, err := matchlog.Read(ctx, path)
	if err != nil {
		s.metrics.RecordError(errorKind(err))
		log.Debug(ctx, "reading match log failed", logger.Error(err))
		return nil, err
	}
	log.Debug(ctx, "match log loaded", logger.Int("records", len(records)))

	table, err := s.compute(ctx, log, records)
	if err != nil {
		s.metrics.RecordError(errorKind(err))
		log.Debug(ctx, "rating computation failed", logger.Error(err))
		return nil, err
	}

	if err := report.Write(s.out, table,
		report.WithFormat(s.format),
		report.WithTop(s.top),
		report.WithKFactor(s.kFactor),
		report.WithMatches(len(records)),
	); err != nil {
		s.metrics.RecordError(metrics.ErrorKindOther)
		return nil, err
	}

	finished := s.now()
	elapsed := finished.Sub(start)
	s.metrics.UpdateParticipants(table.Len())
	s.metrics.RecordRun(elapsed, finished)

	log.Info(ctx, "rating run finished",
		logger.Int("matches", len(records)),
		logger.Int("participants", table.Len()),
		logger.Duration("elapsed", elapsed),
	)
	return table, nil
}

// Compute applies records to a fresh table without any file or report I/O.
func (s *Service) Compute(ctx context.Context, records []model.MatchRecord) (*rating.Table, error) {
	return s.compute(ctx, s.logger, records)
}

func (s *Service) compute(ctx context.Context, log logger.Logger, records []model.MatchRecord) (*rating.Table, error) {
	debug := log.Enabled(ctx, slog.LevelDebug)

	observe := func(st rating.Step) {
		s.metrics.RecordMatch(st.Record.Outcome.String(), st.LeftAfter-st.LeftBefore)
		if debug {
			log.Debug(ctx, "match applied",
				logger.Int("row", st.Record.Row),
				logger.String("left", st.Record.Left),
				logger.String("right", st.Record.Right),
				logger.String("outcome", st.Record.Outcome.String()),
				logger.Float64("expected_left", st.Expected),
				logger.Float64("left_elo", st.LeftAfter),
				logger.Float64("right_elo", st.RightAfter),
			)
		}
	}

	table, err := rating.ProcessAll(ctx, records, rating.NewTable(s.initialRating), s.kFactor, rating.WithObserver(observe))
	if err != nil {
		return nil, fmt.Errorf("compute ratings: %w", err)
	}
	return table, nil
}

// errorKind classifies err for the errors_total metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, matchlog.ErrNotFound):
		return metrics.ErrorKindNotFound
	case errors.Is(err, matchlog.ErrMalformedRecord),
		errors.Is(err, matchlog.ErrMissingColumn),
		errors.Is(err, matchlog.ErrMissingHeader):
		return metrics.ErrorKindMalformed
	default:
		return metrics.ErrorKindOther
	}
}
