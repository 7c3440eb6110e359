package pots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pot-ca/internal/core"
	pkgcore "pot-ca/pkg/core"
)

const exampleInitial = "#..#.#..##......###...###"

func TestEvaluateTreatsOutsideAsDead(t *testing.T) {
	rules, err := RuleTableFromCodes(Code([WindowSize]bool{false, false, true}))
	require.NoError(t, err)

	tape := core.MustParseTape("#", 5)
	assert.True(t, rules.Evaluate(tape, 5))
	assert.False(t, rules.Evaluate(tape, 4))
	assert.False(t, rules.Evaluate(tape, 7))
	assert.False(t, rules.Evaluate(tape, -1000))
}

func TestStepAllDeadIsTerminal(t *testing.T) {
	rules := MustRuleTable(exampleRules)

	next, ok := rules.Step(core.MustParseTape(".......", -3))
	assert.False(t, ok)
	assert.True(t, next.Empty())

	next, ok = rules.Step(core.Tape{})
	assert.False(t, ok)
	assert.True(t, next.Empty())
}

func TestStepExampleFirstGeneration(t *testing.T) {
	rules := MustRuleTable(exampleRules)

	next, ok := rules.Step(core.MustParseTape(exampleInitial, 0))
	require.True(t, ok)

	trimmed := next.Trimmed()
	assert.Equal(t, int64(0), trimmed.Offset)
	assert.Equal(t, "#...#....#.....#..#..#..#", trimmed.String())
}

func TestStepWindowTracksLiveSpan(t *testing.T) {
	rules := MustRuleTable(exampleRules)
	tape := core.MustParseTape("....#..#....", 10)

	next, ok := rules.Step(tape)
	require.True(t, ok)
	assert.Equal(t, int64(12), next.Offset, "first live at 14 minus radius")
	assert.Equal(t, 8, next.Len(), "live span 14..17 widened by two on each side")
}

func TestStepDoesNotModifyInput(t *testing.T) {
	rules := MustRuleTable(exampleRules)
	tape := core.MustParseTape(exampleInitial, 0)
	before := tape.String()

	_, ok := rules.Step(tape)
	require.True(t, ok)
	assert.Equal(t, before, tape.String())
	assert.Equal(t, int64(0), tape.Offset)
}

func TestBruteForceExample(t *testing.T) {
	rules := MustRuleTable(exampleRules)

	score, err := BruteForce(core.MustParseTape(exampleInitial, 0), rules, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(325), score)

	// Same initial state as rendered with three leading dead pots.
	padded := core.MustParseTape("..."+exampleInitial+"...........", -3)
	score, err = BruteForce(padded, rules, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(325), score)
}

func TestBruteForceZeroGenerations(t *testing.T) {
	rules := MustRuleTable(exampleRules)
	tape := core.MustParseTape(exampleInitial, 0)

	score, err := BruteForce(tape, rules, 0)
	require.NoError(t, err)
	assert.Equal(t, tape.Score(), score)

	_, err = BruteForce(tape, rules, -1)
	assert.ErrorIs(t, err, ErrNegativeGenerations)
}

func TestBruteForceDiesOut(t *testing.T) {
	rules, err := RuleTableFromCodes()
	require.NoError(t, err)

	score, err := BruteForce(core.MustParseTape("###", 4), rules, 20)
	require.NoError(t, err)
	assert.Zero(t, score)

	tape, stepped, err := Simulate(core.MustParseTape("###", 4), rules, 20)
	require.NoError(t, err)
	assert.True(t, tape.Empty())
	assert.Equal(t, int64(1), stepped, "only the step that emptied the tape counts")
}

func TestSimulateReportsStepsTaken(t *testing.T) {
	rules := MustRuleTable(exampleRules)

	_, stepped, err := Simulate(core.MustParseTape(exampleInitial, 0), rules, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), stepped)

	_, stepped, err = Simulate(core.MustParseTape(".....", 0), rules, 20)
	require.NoError(t, err)
	assert.Zero(t, stepped)
}

func TestStepTranslationInvariance(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := pkgcore.NewRNG(seed)
		rules, err := RuleTableFromCodes(rng.PatternCodes(patternCount, 0.4)...)
		require.NoError(t, err)
		tape := core.NewTape(0, rng.Cells(16))

		base, ok := rules.Step(tape)
		require.True(t, ok)

		for _, k := range []int64{-1000, -3, 1, 7, 1 << 40} {
			moved, ok := rules.Step(tape.Shifted(k))
			require.True(t, ok)
			assert.Equal(t, base.String(), moved.String(), "seed %d shift %d", seed, k)
			assert.Equal(t, base.Score()+k*base.LiveCount(), moved.Score(), "seed %d shift %d", seed, k)
		}
	}
}

func TestStepIgnoresDeadPadding(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := pkgcore.NewRNG(seed)
		rules, err := RuleTableFromCodes(rng.PatternCodes(patternCount, 0.4)...)
		require.NoError(t, err)
		tape := core.NewTape(-5, rng.Cells(12))

		want, err := BruteForce(tape, rules, 10)
		require.NoError(t, err)

		for _, pad := range [][2]int{{1, 0}, {0, 1}, {2, 2}, {9, 4}} {
			got, err := BruteForce(tape.Padded(pad[0], pad[1]), rules, 10)
			require.NoError(t, err)
			assert.Equal(t, want, got, "seed %d padding %v", seed, pad)
		}

		next, _ := rules.Step(tape)
		padded, _ := rules.Step(tape.Padded(3, 3))
		assert.Equal(t, next.Trimmed(), padded.Trimmed(), "seed %d", seed)
	}
}
