package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"pot-ca/internal/core"
	"pot-ca/internal/sims/pots"
	pkgcore "pot-ca/pkg/core"
)

type sweepConfig struct {
	tables    int
	workers   int
	seed      int64
	width     int
	density   float64
	maxSearch int64
}

type scenario struct {
	id      int
	codes   []uint8
	initial core.Tape
}

type outcome int

const (
	outcomeCycle outcome = iota
	outcomeEmpty
	outcomeUnbounded
)

type scenarioResult struct {
	scenario scenario
	outcome  outcome
	res      pots.Extrapolation
}

func main() {
	cfg := sweepConfig{}
	flag.IntVar(&cfg.tables, "tables", 500, "random rule tables to survey")
	flag.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Int64Var(&cfg.seed, "seed", 1, "seed for rule tables and initial states")
	flag.IntVar(&cfg.width, "width", 24, "pots in each random initial state")
	flag.Float64Var(&cfg.density, "density", 0.3, "chance that a window code maps to alive")
	maxSearch := flag.Int64("max-search", 5000, "generations to search for a cycle")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cycle-sweep [flags] [key=value ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	engine, err := engineFromArgs(*maxSearch, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.maxSearch = engine.MaxSearch

	fmt.Printf("Surveying %d rule tables (%d workers, search %d generations)\n", cfg.tables, cfg.workers, cfg.maxSearch)
	start := time.Now()
	results := sweep(context.Background(), cfg)
	report(os.Stdout, results, time.Since(start))
}

// engineFromArgs layers trailing key=value engine settings over the
// -max-search flag.
func engineFromArgs(maxSearch int64, args []string) (pots.Config, error) {
	settings := map[string]string{"max_search": strconv.FormatInt(maxSearch, 10)}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return pots.Config{}, fmt.Errorf("engine setting %q: want key=value", arg)
		}
		settings[key] = value
	}
	return pots.FromMap(settings), nil
}

func scenarios(cfg sweepConfig) []scenario {
	rng := pkgcore.NewRNG(cfg.seed)
	out := make([]scenario, 0, cfg.tables)
	for i := 0; i < cfg.tables; i++ {
		out = append(out, scenario{
			id:      i,
			codes:   rng.PatternCodes(32, cfg.density),
			initial: core.NewTape(0, rng.Cells(cfg.width)),
		})
	}
	return out
}

func sweep(ctx context.Context, cfg sweepConfig) []scenarioResult {
	if cfg.workers <= 0 {
		cfg.workers = 1
	}
	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < cfg.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(ctx, sc, cfg.maxSearch)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range scenarios(cfg) {
			jobs <- sc
		}
		close(jobs)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].scenario.id < all[j].scenario.id })
	return all
}

func runScenario(ctx context.Context, sc scenario, maxSearch int64) scenarioResult {
	rules, err := pots.RuleTableFromCodes(sc.codes...)
	if err != nil {
		return scenarioResult{scenario: sc, outcome: outcomeUnbounded}
	}
	e := &pots.Extrapolator{Rules: rules, MaxSearch: maxSearch}
	// Any target past the search bound forces a full cycle search.
	res, err := e.Run(ctx, sc.initial, maxSearch+1)
	switch {
	case errors.Is(err, pots.ErrCycleNotFound):
		return scenarioResult{scenario: sc, outcome: outcomeUnbounded}
	case err != nil:
		return scenarioResult{scenario: sc, outcome: outcomeUnbounded, res: res}
	case res.StableEmpty:
		return scenarioResult{scenario: sc, outcome: outcomeEmpty, res: res}
	default:
		return scenarioResult{scenario: sc, outcome: outcomeCycle, res: res}
	}
}

func report(w io.Writer, all []scenarioResult, elapsed time.Duration) {
	var cycles []scenarioResult
	empty, unbounded := 0, 0
	periods := map[int64]int{}
	shifts := map[int64]int{}
	for _, r := range all {
		switch r.outcome {
		case outcomeCycle:
			cycles = append(cycles, r)
			periods[r.res.Period]++
			shifts[r.res.Shift]++
		case outcomeEmpty:
			empty++
		default:
			unbounded++
		}
	}

	fmt.Fprintf(w, "\ncycles=%d empty=%d unsettled=%d (elapsed %s)\n", len(cycles), empty, unbounded, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "periods: %s\n", histogram(periods))
	fmt.Fprintf(w, "shifts:  %s\n", histogram(shifts))

	sort.SliceStable(cycles, func(i, j int) bool { return cycles[i].res.Recurrence > cycles[j].res.Recurrence })
	fmt.Fprintf(w, "\nLongest searches:\n")
	for i := 0; i < len(cycles) && i < 5; i++ {
		r := cycles[i]
		rules, _ := pots.RuleTableFromCodes(r.scenario.codes...)
		fmt.Fprintf(w, "%2d) table=%d first=%d period=%d shift=%d initial=%s alive=%v\n",
			i+1, r.scenario.id, r.res.FirstSeen, r.res.Period, r.res.Shift, r.scenario.initial, rules.Live())
	}
}

func histogram(counts map[int64]int) string {
	keys := make([]int64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d:%d", k, counts[k])
	}
	if s == "" {
		return "-"
	}
	return s
}
