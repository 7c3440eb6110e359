package pots

import (
	"fmt"

	"pot-ca/internal/core"
)

// Simulate steps the initial tape the given number of generations and
// reports how many steps were actually taken. A tape that dies out stops
// early and is returned empty.
func Simulate(initial core.Tape, rules *RuleTable, generations int64) (core.Tape, int64, error) {
	if generations < 0 {
		return core.Tape{}, 0, fmt.Errorf("simulate %d generations: %w", generations, ErrNegativeGenerations)
	}
	tape := initial
	for gen := int64(0); gen < generations; gen++ {
		next, ok := rules.Step(tape)
		if !ok {
			return next, gen, nil
		}
		tape = next
	}
	return tape, generations, nil
}

// BruteForce returns the sum of live positions after the given number of
// generations, computed by direct simulation.
func BruteForce(initial core.Tape, rules *RuleTable, generations int64) (int64, error) {
	tape, _, err := Simulate(initial, rules, generations)
	if err != nil {
		return 0, err
	}
	return tape.Score(), nil
}
