// Package cryptarith validates and describes a verbal-arithmetic puzzle
// instance W1 + W2 = W3, the setup step ahead of compilation.
package cryptarith

import "fmt"

// Puzzle is a validated instance of W1 + W2 = W3 over Base (default 10).
// Words are stored most-significant-letter first, as given on the command
// line; the compiler walks them right-to-left.
type Puzzle struct {
	W1, W2, W3 string
	Base       int
}

// SetupError reports a puzzle rejected at construction time (CLI exit 2).
type SetupError struct {
	Reason string
}

func (e *SetupError) Error() string { return "puzzle setup: " + e.Reason }

// New validates w1, w2, w3 against the setup constraints and returns a
// Puzzle ready for compilation, or a *SetupError describing why the
// instance was rejected.
//
// The length check corrects a bug found in the program this solver is
// descended from, which tested `l3-l1 > 1` twice and never compared against
// l2; the intended check is the disjunction below.
func New(w1, w2, w3 string, base int) (Puzzle, error) {
	if base <= 1 {
		return Puzzle{}, &SetupError{Reason: fmt.Sprintf("base %d must be > 1", base)}
	}
	if w1 == "" || w2 == "" || w3 == "" {
		return Puzzle{}, &SetupError{Reason: "words must be non-empty"}
	}
	for _, w := range [...]string{w1, w2, w3} {
		for i := 0; i < len(w); i++ {
			c := w[i]
			if c < 'A' || c > 'Z' {
				return Puzzle{}, &SetupError{Reason: fmt.Sprintf("letter %q is not A-Z", c)}
			}
		}
	}

	l1, l2, l3 := len(w1), len(w2), len(w3)
	longest := l1
	if l2 > longest {
		longest = l2
	}
	if l3 < longest {
		return Puzzle{}, &SetupError{Reason: "sum is shorter than the longer summand"}
	}
	if l3-l1 > 1 || l3-l2 > 1 {
		return Puzzle{}, &SetupError{Reason: "sum has more than one extra leading letter"}
	}

	return Puzzle{W1: w1, W2: w2, W3: w3, Base: base}, nil
}

// Letters returns the puzzle's distinct letters in first-seen order across
// W1, W2, W3 -- used by callers that want to render every assigned letter
// (e.g. the CLI's "found" block), not just the ones the compiler touches.
func (p Puzzle) Letters() []byte {
	var out []byte
	seen := map[byte]bool{}
	for _, w := range [...]string{p.W1, p.W2, p.W3} {
		for i := 0; i < len(w); i++ {
			c := w[i]
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
