package puzzle

import (
	"bufio"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pot-ca/internal/sims/pots"
)

func TestParseFileExample(t *testing.T) {
	p, err := ParseFile(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)

	assert.Equal(t, "initial state", p.Label)
	assert.Equal(t, "#..#.#..##......###...###", p.Initial.String())
	assert.Equal(t, int64(0), p.Initial.Offset)
	require.Len(t, p.Lines, 14)
	assert.Equal(t, pots.RuleLine{Pattern: "...##", Outcome: "#"}, p.Lines[0])

	rules, err := p.Rules()
	require.NoError(t, err)
	score, err := pots.BruteForce(p.Initial, rules, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(325), score)
}

func TestParseToleratesSurroundingBlankLines(t *testing.T) {
	input := "\n\ninitial state: #.#\r\n\r\n..#.. => #\r\n\n#.... => .\n\n"
	p, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "#.#", p.Initial.String())
	assert.Len(t, p.Lines, 2)
}

func TestParseHeaderOnly(t *testing.T) {
	_, err := Parse(strings.NewReader("initial state: #.#\n"))
	assert.ErrorIs(t, err, ErrMissingRules)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{"empty", "", ErrMissingHeader, 0},
		{"no label", "#..#\n\n..#.. => #\n", ErrMissingHeader, 1},
		{"no separator", "initial state: #\n..#.. => #\n", ErrMissingRules, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var serr *SyntaxError
			if tc.line > 0 {
				require.True(t, errors.As(err, &serr))
				assert.Equal(t, tc.line, serr.Line)
			}
		})
	}
}

func TestParseBadSymbols(t *testing.T) {
	_, err := Parse(strings.NewReader("initial state: #.x\n\n..#.. => #\n"))
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Line)

	_, err = Parse(strings.NewReader("initial state: #\n\n..#.. -> #\n"))
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 3, serr.Line)
}

func TestRulesReportsMalformedLines(t *testing.T) {
	p, err := Parse(strings.NewReader("initial state: #\n\n..#. => #\n"))
	require.NoError(t, err)

	_, err = p.Rules()
	assert.ErrorIs(t, err, pots.ErrMalformedRule)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestParseLongInitialState(t *testing.T) {
	state := strings.Repeat("#.", 100_000)
	p, err := Parse(strings.NewReader("initial state: " + state + "\n\n..#.. => #\n"))
	require.NoError(t, err)
	assert.Equal(t, 200_000, p.Initial.Len())
}

func TestParseLineTooLong(t *testing.T) {
	saved := MaxLineLength
	MaxLineLength = 1024
	t.Cleanup(func() { MaxLineLength = saved })

	input := "initial state: #\n\n" + strings.Repeat(".", 2048) + " => #\n"
	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, bufio.ErrTooLong)

	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 3, serr.Line)
}
