package vm

import "github.com/jcorbin/cryptverb/internal/vmcode"

// Frontier is the fixed-capacity array of frames described by spec.md §3:
// states[0..Cap) addressed by an index, not a linked list, so FORK and
// backtracking stay O(1) amortised per branch (spec.md §9).
type Frontier struct {
	states []State
	cap    int
	top    int
}

// NewFrontier allocates a frontier of the given capacity, with its sole
// initial frame ready to execute a program over the given base. A zero
// stackMax selects StackMax.
func NewFrontier(capacity, base, stackMax int) *Frontier {
	fr := &Frontier{
		states: make([]State, capacity),
		cap:    capacity,
	}
	fr.states[0] = NewState(base, stackMax)
	return fr
}

// Top returns a pointer to the current (highest-index, "running") frame.
func (fr *Frontier) Top() *State { return &fr.states[fr.top] }

// TopIndex returns the frontier's current top index.
func (fr *Frontier) TopIndex() int { return fr.top }

// Backtrack discards the current frame and resumes its parent. Reports
// whether a parent remains (false means the whole frontier is exhausted).
func (fr *Frontier) Backtrack() bool {
	if fr.top == 0 {
		return false
	}
	fr.top--
	return true
}

// Tick advances the current frame by exactly one instruction (spec.md
// §4.2/§4.3). Preconditions: the current frame is not Done (checked by the
// driver loop, spec.md §4.4).
func (fr *Frontier) Tick(prog vmcode.Program) {
	cur := fr.Top()
	if cur.PC < 0 || cur.PC >= len(prog) {
		cur.die(CrashInvalidPI)
		return
	}
	ins := prog[cur.PC]
	if ins.Op == vmcode.Fork {
		fr.fork(cur, ins.Arg)
		return
	}
	step(cur, ins)
}

// fork implements spec.md §4.3 exactly: a capacity check against the
// frontier first (so a doomed fork never mutates the parent's stack), then
// the parent-branch-token push, then the PC advance, then N sibling copies
// stacked above top, each distinguished by the value 1..n on its stack top.
func (fr *Frontier) fork(parent *State, n int32) {
	if n <= 0 || fr.top+int(n) >= fr.cap {
		parent.die(CrashSearchOverflow)
		return
	}
	if !parent.push(0) {
		return
	}
	parent.PC++

	base := parent.Clone()
	for j := 1; j <= int(n); j++ {
		child := base.Clone()
		child.Stack[len(child.Stack)-1] = int32(j)
		fr.states[fr.top+j] = child
	}
	fr.top += int(n)
}
