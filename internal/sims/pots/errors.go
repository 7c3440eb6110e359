package pots

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRule is wrapped by every ParseError.
	ErrMalformedRule = errors.New("malformed rule")
	// ErrSpontaneousBirth rejects tables where an all-dead window produces a
	// live cell, which would grow the tape without bound on both sides.
	ErrSpontaneousBirth = errors.New("rule table maps the empty window ..... to alive")
	// ErrCycleNotFound is wrapped by CycleNotFoundError.
	ErrCycleNotFound = errors.New("no repeating pattern found")
	// ErrScoreOverflow is returned when an extrapolated score does not fit in
	// an int64.
	ErrScoreOverflow = errors.New("score overflows int64")
	// ErrNegativeGenerations rejects negative generation counts.
	ErrNegativeGenerations = errors.New("generation count must not be negative")
)

// ParseError reports a rule line that cannot be turned into a table entry.
type ParseError struct {
	Line   int
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rule %d %q: %s", e.Line+1, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformedRule }

// CycleNotFoundError reports that the automaton did not repeat a normalized
// pattern within the search bound.
type CycleNotFoundError struct {
	Searched int64
	Target   int64
}

func (e *CycleNotFoundError) Error() string {
	return fmt.Sprintf("%v after %d generations (target %d)", ErrCycleNotFound, e.Searched, e.Target)
}

func (e *CycleNotFoundError) Unwrap() error { return ErrCycleNotFound }
