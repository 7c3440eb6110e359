package pots

import "pot-ca/internal/core"

// Evaluate returns the next state of the cell at absolute position abs.
// Positions outside the tape count as dead.
func (r *RuleTable) Evaluate(t core.Tape, abs int64) bool {
	var window [WindowSize]bool
	for i := range window {
		window[i] = t.At(abs - Radius + int64(i))
	}
	return r.next[Code(window)]
}

// Step advances the tape by one generation. The returned tape covers the old
// live span widened by Radius on each side, which holds every cell that can
// be alive next. ok is false when t has no live cells: such a tape stays
// empty forever and must not be stepped again.
func (r *RuleTable) Step(t core.Tape) (next core.Tape, ok bool) {
	first, ok := t.FirstLive()
	if !ok {
		return core.Tape{Offset: t.Offset}, false
	}
	last, _ := t.LastLive()

	start := t.Offset + int64(first) - Radius
	end := t.Offset + int64(last) + Radius

	cells := make([]bool, 0, end-start+1)
	for abs := start; abs <= end; abs++ {
		cells = append(cells, r.Evaluate(t, abs))
	}
	return core.Tape{Offset: start, Cells: cells}, true
}
