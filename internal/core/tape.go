package core

import (
	"fmt"
	"strings"
)

const (
	// LiveSymbol marks a planted pot in textual tapes.
	LiveSymbol = '#'
	// DeadSymbol marks an empty pot in textual tapes.
	DeadSymbol = '.'
)

// Tape stores a finite window of an infinite one-dimensional row of cells.
// Cells[i] sits at absolute position Offset+i; every position outside the
// window is dead.
type Tape struct {
	Offset int64
	Cells  []bool
}

// NewTape returns a tape holding a copy of cells starting at offset.
func NewTape(offset int64, cells []bool) Tape {
	return Tape{Offset: offset, Cells: append([]bool(nil), cells...)}
}

// ParseTape builds a tape from '#'/'.' text whose first symbol sits at offset.
func ParseTape(s string, offset int64) (Tape, error) {
	cells := make([]bool, 0, len(s))
	for i, r := range s {
		switch r {
		case LiveSymbol:
			cells = append(cells, true)
		case DeadSymbol:
			cells = append(cells, false)
		default:
			return Tape{}, fmt.Errorf("invalid cell symbol %q at column %d", r, i)
		}
	}
	return Tape{Offset: offset, Cells: cells}, nil
}

// MustParseTape is ParseTape for literals known to be valid.
func MustParseTape(s string, offset int64) Tape {
	t, err := ParseTape(s, offset)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of materialized cells.
func (t Tape) Len() int { return len(t.Cells) }

// End returns the absolute position of the last materialized cell.
func (t Tape) End() int64 { return t.Offset + int64(len(t.Cells)) - 1 }

// At reports whether the cell at absolute position abs is alive.
func (t Tape) At(abs int64) bool {
	i := abs - t.Offset
	if i < 0 || i >= int64(len(t.Cells)) {
		return false
	}
	return t.Cells[i]
}

// FirstLive returns the local index of the leftmost live cell.
func (t Tape) FirstLive() (int, bool) {
	for i, c := range t.Cells {
		if c {
			return i, true
		}
	}
	return 0, false
}

// LastLive returns the local index of the rightmost live cell.
func (t Tape) LastLive() (int, bool) {
	for i := len(t.Cells) - 1; i >= 0; i-- {
		if t.Cells[i] {
			return i, true
		}
	}
	return 0, false
}

// Empty reports whether the tape has no live cells.
func (t Tape) Empty() bool {
	_, ok := t.FirstLive()
	return !ok
}

// LiveSpan returns the cells between the first and last live cell inclusive.
// The result aliases the tape and is nil for an empty tape.
func (t Tape) LiveSpan() []bool {
	first, ok := t.FirstLive()
	if !ok {
		return nil
	}
	last, _ := t.LastLive()
	return t.Cells[first : last+1]
}

// Trimmed returns a copy of the tape with leading and trailing dead cells removed.
func (t Tape) Trimmed() Tape {
	first, ok := t.FirstLive()
	if !ok {
		return Tape{Offset: t.Offset}
	}
	return NewTape(t.Offset+int64(first), t.LiveSpan())
}

// Padded returns a copy with extra dead cells on either side. Absolute
// positions of existing cells are unchanged.
func (t Tape) Padded(left, right int) Tape {
	cells := make([]bool, left+len(t.Cells)+right)
	copy(cells[left:], t.Cells)
	return Tape{Offset: t.Offset - int64(left), Cells: cells}
}

// Shifted returns a copy translated by k positions.
func (t Tape) Shifted(k int64) Tape {
	return NewTape(t.Offset+k, t.Cells)
}

// LiveCount returns the number of live cells.
func (t Tape) LiveCount() int64 {
	var n int64
	for _, c := range t.Cells {
		if c {
			n++
		}
	}
	return n
}

// Score sums the absolute positions of all live cells.
func (t Tape) Score() int64 {
	var sum int64
	for i, c := range t.Cells {
		if c {
			sum += t.Offset + int64(i)
		}
	}
	return sum
}

// String renders the materialized cells with '#' and '.'.
func (t Tape) String() string {
	var b strings.Builder
	b.Grow(len(t.Cells))
	for _, c := range t.Cells {
		if c {
			b.WriteByte(LiveSymbol)
		} else {
			b.WriteByte(DeadSymbol)
		}
	}
	return b.String()
}
