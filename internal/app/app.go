package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"pot-ca/internal/core"
	"pot-ca/internal/metrics"
	"pot-ca/internal/puzzle"
	"pot-ca/internal/sims/pots"
)

// Input is a parsed puzzle with its rule table.
type Input struct {
	Path    string
	Initial core.Tape
	Rules   *pots.RuleTable
}

// Results holds both answers of a full run.
type Results struct {
	Short int64
	Long  int64
	Cycle pots.Extrapolation
}

// App wires the engine to logging and metrics.
type App struct {
	cfg     *Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs an App. A nil logger falls back to slog.Default and nil
// metrics to a private registry.
func New(cfg *Config, logger *slog.Logger, m *metrics.Metrics) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	return &App{cfg: cfg, logger: logger, metrics: m}
}

// Metrics exposes the collectors the app records into.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

// Load parses the input file and builds its rule table.
func (a *App) Load(path string) (*Input, error) {
	p, err := puzzle.ParseFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := p.Rules()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("input loaded",
		"path", path,
		"pots", p.Initial.Len(),
		"live", p.Initial.LiveCount(),
		"rules", len(p.Lines),
		"alive_codes", len(rules.Live()))
	return &Input{Path: path, Initial: p.Initial, Rules: rules}, nil
}

// Simulate computes the score after the given generations by stepping every
// generation.
func (a *App) Simulate(in *Input, generations int64) (int64, error) {
	start := time.Now()
	tape, stepped, err := pots.Simulate(in.Initial, in.Rules, generations)
	a.metrics.ObserveSimulation(stepped, err)
	if err != nil {
		return 0, err
	}
	score := tape.Score()
	a.logger.Info("simulated", "generations", generations, "stepped", stepped, "score", score, "elapsed", time.Since(start))
	return score, nil
}

// Extrapolate computes the score after target generations through cycle
// detection.
func (a *App) Extrapolate(ctx context.Context, in *Input, target int64) (pots.Extrapolation, error) {
	start := time.Now()
	e := &pots.Extrapolator{
		Rules:     in.Rules,
		MaxSearch: a.cfg.MaxSearch,
		Logger:    a.logger,
	}
	res, err := e.Run(ctx, in.Initial, target)
	a.metrics.ObserveExtrapolation(res, err)
	if err != nil {
		return pots.Extrapolation{}, err
	}
	attrs := []any{
		"target", target,
		"score", res.Score,
		"searched", res.Searched,
		"elapsed", time.Since(start),
	}
	switch {
	case res.StableEmpty:
		attrs = append(attrs, "stable_empty", true)
	case res.Direct:
		attrs = append(attrs, "direct", true)
	default:
		attrs = append(attrs,
			"first_seen", res.FirstSeen,
			"period", res.Period,
			"shift", res.Shift,
			"repetitions", res.Repetitions,
			"remainder", res.Remainder)
	}
	a.logger.Info("extrapolated", attrs...)
	return res, nil
}

// Run computes both results for the input at path. The two computations are
// independent and run concurrently; they share only immutable input.
func (a *App) Run(ctx context.Context, path string) (Results, error) {
	a.logger.Info("starting run", a.cfg.Parameters().LogAttrs()...)

	in, err := a.Load(path)
	if err != nil {
		return Results{}, err
	}

	var res Results
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		score, err := a.Simulate(in, a.cfg.ShortGenerations)
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}
		res.Short = score
		return nil
	})
	g.Go(func() error {
		cycle, err := a.Extrapolate(ctx, in, a.cfg.TargetGenerations)
		if err != nil {
			return fmt.Errorf("extrapolate: %w", err)
		}
		res.Long = cycle.Score
		res.Cycle = cycle
		return nil
	})
	if err := g.Wait(); err != nil {
		return Results{}, err
	}
	return res, nil
}

// Close flushes metrics to the configured file, if any.
func (a *App) Close() error {
	if a.cfg.MetricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteFile(a.cfg.MetricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
