// Package puzzle reads the pot automaton input format:
//
//	initial state: #..#.#..##......###...###
//
//	...## => #
//	..#.. => #
package puzzle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pot-ca/internal/core"
	"pot-ca/internal/sims/pots"
)

// MaxLineLength bounds a single input line, including the initial state.
var MaxLineLength = 16 << 20

var (
	// ErrMissingHeader is returned when the input has no "<label>: <pattern>" line.
	ErrMissingHeader = errors.New("missing initial state line")
	// ErrMissingRules is returned when no blank separator line follows the header.
	ErrMissingRules = errors.New("missing blank line before rules")
)

// SyntaxError reports a structurally invalid input line.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Puzzle is a parsed input file.
type Puzzle struct {
	Label   string
	Initial core.Tape
	Lines   []pots.RuleLine
}

// Rules builds the rule table for the parsed rule lines.
func (p *Puzzle) Rules() (*pots.RuleTable, error) {
	return pots.NewRuleTable(p.Lines)
}

// ParseFile parses the file at path.
func ParseFile(path string) (*Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse reads an initial state line, a blank separator and one rule per
// line. Leading blank lines and trailing blank lines are ignored. The first
// pot of the initial state sits at position zero.
func Parse(r io.Reader) (*Puzzle, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, MaxLineLength)), MaxLineLength)
	lineNo := 0
	scanErr := func() error {
		if err := sc.Err(); err != nil {
			return &SyntaxError{Line: lineNo + 1, Err: err}
		}
		return nil
	}
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(sc.Text(), " \t\r"), true
	}

	var header string
	for {
		line, ok := next()
		if !ok {
			if err := scanErr(); err != nil {
				return nil, err
			}
			return nil, ErrMissingHeader
		}
		if strings.TrimSpace(line) != "" {
			header = line
			break
		}
	}

	label, pattern, ok := strings.Cut(header, ":")
	if !ok {
		return nil, &SyntaxError{Line: lineNo, Text: header, Err: ErrMissingHeader}
	}
	initial, err := core.ParseTape(strings.TrimSpace(pattern), 0)
	if err != nil {
		return nil, &SyntaxError{Line: lineNo, Text: header, Err: err}
	}
	p := &Puzzle{Label: strings.TrimSpace(label), Initial: initial}

	sep, ok := next()
	if !ok {
		if err := scanErr(); err != nil {
			return nil, err
		}
		return nil, ErrMissingRules
	}
	if strings.TrimSpace(sep) != "" {
		return nil, &SyntaxError{Line: lineNo, Text: sep, Err: ErrMissingRules}
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		window, outcome, ok := strings.Cut(line, "=>")
		if !ok {
			return nil, &SyntaxError{Line: lineNo, Text: line, Err: errors.New(`expected "<window> => <outcome>"`)}
		}
		p.Lines = append(p.Lines, pots.RuleLine{
			Pattern: strings.TrimSpace(window),
			Outcome: strings.TrimSpace(outcome),
		})
	}
	if err := scanErr(); err != nil {
		return nil, err
	}
	return p, nil
}
