package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"environapi/internal/metrics"
	"environapi/internal/modules/environment/trend"
	"environapi/internal/modules/environment/types"
)

// RefreshToggle is the process-wide refresh flag. Flipping it changes a value
// the dashboard echoes, which forces a fresh render; it carries no other data.
type RefreshToggle struct {
	v atomic.Bool
}

// Toggle flips the flag and returns the new value.
func (t *RefreshToggle) Toggle() bool {
	for {
		old := t.v.Load()
		if t.v.CompareAndSwap(old, !old) {
			metrics.RefreshToggles.Inc()
			return !old
		}
	}
}

func (t *RefreshToggle) Value() bool {
	return t.v.Load()
}

type DashboardParams struct {
	Range    types.TimeRange
	Metric   types.Metric
	Location string
	Refresh  bool
}

// DashboardResult is one pass of generate, project and summarize.
type DashboardResult struct {
	Params DashboardParams
	Series types.Series
	// Stats is nil when the series was empty.
	Stats *types.SummaryStats
	// Inverted is set when Range.Start is after Range.End.
	Inverted bool
}

type Service struct {
	newSource func() trend.RandomSource
	refresh   *RefreshToggle
	logger    *slog.Logger
}

type Option func(*Service)

// WithRandomSource overrides the per-call random source factory.
func WithRandomSource(newSource func() trend.RandomSource) Option {
	return func(s *Service) {
		s.newSource = newSource
	}
}

func NewService(logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		newSource: trend.NewRandomSource,
		refresh:   &RefreshToggle{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) RefreshToggle() *RefreshToggle {
	return s.refresh
}

// Table generates a fresh trend table for r.
func (s *Service) Table(r types.TimeRange) types.TrendTable {
	start := time.Now()
	table := trend.Generate(r.Start, r.End, s.newSource())
	metrics.GenerateTotal.Inc()
	metrics.GenerateDuration.Observe(time.Since(start).Seconds())
	metrics.GeneratedTicks.Observe(float64(len(table)))

	s.logger.Debug("trend table generated",
		"start", r.Start.Format(trend.DateLayout),
		"end", r.End.Format(trend.DateLayout),
		"ticks", len(table),
	)
	return table
}

// Series generates a fresh table for r and projects metric out of it.
func (s *Service) Series(r types.TimeRange, metric types.Metric) (types.Series, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: unknown metric %d", trend.ErrInvalidInput, int(metric))
	}
	return trend.Project(s.Table(r), metric), nil
}

// Summary generates, projects and summarizes. An empty range fails with
// trend.ErrEmptyInput; the series is returned either way.
func (s *Service) Summary(r types.TimeRange, metric types.Metric) (types.Series, types.SummaryStats, error) {
	series, err := s.Series(r, metric)
	if err != nil {
		return nil, types.SummaryStats{}, err
	}
	stats, err := trend.Summarize(series)
	metrics.SummariesTotal.WithLabelValues(metric.Key(), summaryStatus(err)).Inc()
	if err != nil {
		return series, types.SummaryStats{}, err
	}
	return series, stats, nil
}

// Dashboard runs the full pipeline for one render. An empty series is not an
// error here: the result carries nil Stats and the page reports it.
func (s *Service) Dashboard(p DashboardParams) (DashboardResult, error) {
	series, stats, err := s.Summary(p.Range, p.Metric)
	res := DashboardResult{
		Params:   p,
		Series:   series,
		Inverted: p.Range.Inverted(),
	}
	switch {
	case err == nil:
		res.Stats = &stats
	case errors.Is(err, trend.ErrEmptyInput):
		s.logger.Debug("dashboard: empty series",
			"metric", p.Metric.Key(),
			"inverted", res.Inverted,
		)
	default:
		return DashboardResult{}, err
	}
	return res, nil
}

func summaryStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, trend.ErrEmptyInput):
		return "empty"
	default:
		return "error"
	}
}
