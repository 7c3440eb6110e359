package pots

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"pot-ca/internal/core"
)

// DefaultMaxSearch bounds how many generations the extrapolator simulates
// while looking for a repeated pattern.
const DefaultMaxSearch int64 = 100_000

const cancelCheckEvery = 1024

// Extrapolation is the outcome of an extrapolated run together with the
// cycle bookkeeping that produced it.
type Extrapolation struct {
	Target int64
	Score  int64

	// FirstSeen and Recurrence are the generations at which the repeated
	// normalized pattern was first and second observed.
	FirstSeen  int64
	Recurrence int64
	Period     int64
	// Shift is the change of the first live position across one period.
	Shift int64

	Repetitions int64
	Remainder   int64

	// Searched counts generations simulated while looking for a repeat.
	Searched int64
	// Direct is set when the target was reached before any repeat.
	Direct bool
	// StableEmpty is set when every cell died; the score is then zero.
	StableEmpty bool
}

// Extrapolator computes scores for generation counts far too large to
// simulate by finding the point where the live pattern starts repeating.
type Extrapolator struct {
	Rules *RuleTable
	// MaxSearch caps the generations simulated before giving up; zero means
	// DefaultMaxSearch.
	MaxSearch int64
	Logger    *slog.Logger
	// ProgressInterval spaces debug progress records; zero means one second.
	ProgressInterval time.Duration
}

// Extrapolate is a convenience wrapper around Extrapolator.Run with default
// settings.
func Extrapolate(initial core.Tape, rules *RuleTable, target int64) (int64, error) {
	e := &Extrapolator{Rules: rules}
	res, err := e.Run(context.Background(), initial, target)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Run returns the score after target generations.
//
// Each generation's trimmed live span is remembered together with the
// generation it appeared in. When generation g repeats the pattern of an
// earlier generation j, every later generation n >= j equals generation
// j+(n-j)%(g-j) translated by (n-j)/(g-j) times the drift of the first live
// cell between j and g.
func (e *Extrapolator) Run(ctx context.Context, initial core.Tape, target int64) (Extrapolation, error) {
	if target < 0 {
		return Extrapolation{}, fmt.Errorf("extrapolate %d generations: %w", target, ErrNegativeGenerations)
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := e.MaxSearch
	if limit <= 0 {
		limit = DefaultMaxSearch
	}
	progress := core.NewThrottle(e.ProgressInterval)

	seen := make(map[string]int64)
	var firstAbs []int64

	tape := initial
	for gen := int64(0); ; gen++ {
		if gen == target {
			return Extrapolation{Target: target, Score: tape.Score(), Searched: gen, Direct: true}, nil
		}
		first, ok := tape.FirstLive()
		if !ok {
			return Extrapolation{Target: target, Searched: gen, StableEmpty: true}, nil
		}
		abs := tape.Offset + int64(first)

		key := snapshotKey(tape)
		if j, dup := seen[key]; dup {
			return e.fromCycle(initial, target, j, gen, abs-firstAbs[j])
		}
		if gen >= limit {
			return Extrapolation{}, &CycleNotFoundError{Searched: gen, Target: target}
		}
		seen[key] = gen
		firstAbs = append(firstAbs, abs)

		if gen%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Extrapolation{}, fmt.Errorf("extrapolate at generation %d: %w", gen, err)
			}
		}
		if progress.Ready() {
			logger.Debug("searching for cycle", "generation", gen, "patterns", len(seen), "span", len(tape.LiveSpan()))
		}

		tape, _ = e.Rules.Step(tape)
	}
}

func (e *Extrapolator) fromCycle(initial core.Tape, target, firstSeen, recurrence, shift int64) (Extrapolation, error) {
	res := Extrapolation{
		Target:     target,
		FirstSeen:  firstSeen,
		Recurrence: recurrence,
		Period:     recurrence - firstSeen,
		Shift:      shift,
		Searched:   recurrence,
	}
	res.Repetitions = (target - firstSeen) / res.Period
	res.Remainder = (target - firstSeen) % res.Period

	tape, _, err := Simulate(initial, e.Rules, firstSeen+res.Remainder)
	if err != nil {
		return Extrapolation{}, err
	}
	score, ok := shiftedScore(tape.Score(), res.Repetitions, res.Shift, tape.LiveCount())
	if !ok {
		return Extrapolation{}, fmt.Errorf("%d repetitions of shift %d over %d pots: %w",
			res.Repetitions, res.Shift, tape.LiveCount(), ErrScoreOverflow)
	}
	res.Score = score
	return res, nil
}

// shiftedScore returns base + repetitions*shift*live, or false when the
// result does not fit in an int64.
func shiftedScore(base, repetitions, shift, live int64) (int64, bool) {
	total := new(big.Int).Mul(big.NewInt(repetitions), big.NewInt(shift))
	total.Mul(total, big.NewInt(live))
	total.Add(total, big.NewInt(base))
	if !total.IsInt64() {
		return 0, false
	}
	return total.Int64(), true
}

func snapshotKey(t core.Tape) string {
	return core.Tape{Cells: t.LiveSpan()}.String()
}
