package pots

import (
	"strings"
	"unicode/utf8"

	"pot-ca/internal/core"
)

// WindowSize is the number of cells a rule looks at: two on each side plus
// the cell itself.
const WindowSize = 5

// Radius is how far a window reaches on each side of its center.
const Radius = WindowSize / 2

const patternCount = 1 << WindowSize

// RuleLine is one textual rule, e.g. Pattern "..#.#" and Outcome "#".
type RuleLine struct {
	Pattern string
	Outcome string
}

// RuleSpec is one structured rule.
type RuleSpec struct {
	Window  [WindowSize]bool
	Outcome bool
}

// RuleTable maps every 5-cell pattern code to the next state of the center
// cell. Codes never supplied map to dead.
type RuleTable struct {
	next [patternCount]bool
}

// Code returns the pattern code of a window: bit i is set when the i-th cell
// from the left is alive.
func Code(window [WindowSize]bool) uint8 {
	var code uint8
	for i, alive := range window {
		if alive {
			code |= 1 << i
		}
	}
	return code
}

// NewRuleTable builds a table from textual rule lines.
func NewRuleTable(lines []RuleLine) (*RuleTable, error) {
	specs := make([]RuleSpec, 0, len(lines))
	for i, l := range lines {
		spec, err := parseRuleLine(l)
		if err != nil {
			err.Line = i
			return nil, err
		}
		specs = append(specs, spec)
	}
	return RuleTableFromSpecs(specs)
}

// MustRuleTable is NewRuleTable for literal rule sets known to be valid.
func MustRuleTable(lines []RuleLine) *RuleTable {
	r, err := NewRuleTable(lines)
	if err != nil {
		panic(err)
	}
	return r
}

// RuleTableFromSpecs builds a table from structured rules. Later rules for the
// same window override earlier ones.
func RuleTableFromSpecs(specs []RuleSpec) (*RuleTable, error) {
	r := &RuleTable{}
	for _, s := range specs {
		r.next[Code(s.Window)] = s.Outcome
	}
	if r.next[0] {
		return nil, ErrSpontaneousBirth
	}
	return r, nil
}

// RuleTableFromCodes builds a table where exactly the given codes map to alive.
func RuleTableFromCodes(codes ...uint8) (*RuleTable, error) {
	r := &RuleTable{}
	for _, c := range codes {
		r.next[c%patternCount] = true
	}
	if r.next[0] {
		return nil, ErrSpontaneousBirth
	}
	return r, nil
}

func parseRuleLine(l RuleLine) (RuleSpec, *ParseError) {
	var spec RuleSpec
	input := l.Pattern + " => " + l.Outcome
	if n := utf8.RuneCountInString(l.Pattern); n != WindowSize {
		return spec, &ParseError{Input: input, Reason: "pattern must have exactly 5 cells"}
	}
	for i, r := range l.Pattern {
		switch r {
		case core.LiveSymbol:
			spec.Window[i] = true
		case core.DeadSymbol:
		default:
			return spec, &ParseError{Input: input, Reason: "pattern contains " + string(r)}
		}
	}
	switch l.Outcome {
	case string(core.LiveSymbol):
		spec.Outcome = true
	case string(core.DeadSymbol):
	default:
		return spec, &ParseError{Input: input, Reason: "outcome must be # or ."}
	}
	return spec, nil
}

// Lookup returns the outcome for a pattern code. Codes above 31 are dead.
func (r *RuleTable) Lookup(code uint8) bool {
	if int(code) >= patternCount {
		return false
	}
	return r.next[code]
}

// Live lists the codes that map to alive in ascending order.
func (r *RuleTable) Live() []uint8 {
	var codes []uint8
	for c, alive := range r.next {
		if alive {
			codes = append(codes, uint8(c))
		}
	}
	return codes
}

// String renders the live rules one per line in input syntax.
func (r *RuleTable) String() string {
	var b strings.Builder
	for _, c := range r.Live() {
		for i := 0; i < WindowSize; i++ {
			if c&(1<<i) != 0 {
				b.WriteByte(core.LiveSymbol)
			} else {
				b.WriteByte(core.DeadSymbol)
			}
		}
		b.WriteString(" => #\n")
	}
	return b.String()
}
