// Package search implements the driver loop of spec.md §4.4: it ticks the
// frontier's current frame, and on every frame death either reports success,
// reports exhaustion, or backtracks to the parent.
package search

import (
	"github.com/google/uuid"

	"github.com/jcorbin/cryptverb/internal/vm"
	"github.com/jcorbin/cryptverb/internal/vmcode"
)

// DefaultCapacity is the shipped frontier size (spec.md §5: CAP = 4096).
const DefaultCapacity = 4096

// Result is the outcome of a Search: either a solved frame (Solved true,
// State holding the winning assignment) or exhaustion (Solved false).
type Result struct {
	Solved bool
	State  vm.State

	// Ticks counts how many instructions were executed, diagnostic only.
	Ticks int
}

type config struct {
	capacity int
	stackMax int
	logf     func(mess string, args ...interface{})
}

// Option configures a Search call, following the teacher's functional
// options shape (jcorbin-gothird's VMOption/options/noption).
type Option interface{ apply(*config) }

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithCapacity overrides the frontier's capacity (default DefaultCapacity).
func WithCapacity(n int) Option {
	return optionFunc(func(c *config) { c.capacity = n })
}

// WithStackMax overrides the per-frame operand stack bound (default
// vm.StackMax).
func WithStackMax(n int) Option {
	return optionFunc(func(c *config) { c.stackMax = n })
}

// WithTrace installs a leveled logging function; when non-nil, Search logs
// one line per tick (PC, opcode, stack, frontier depth), tagged with a
// per-run UUID so concurrent runs (cmd/batchsolve) can be told apart in
// shared log output.
func WithTrace(logf func(mess string, args ...interface{})) Option {
	return optionFunc(func(c *config) { c.logf = logf })
}

// Search compiles nothing itself; it drives prog (as produced by
// internal/compiler) to completion over the given base, implementing
// spec.md §4.4's loop verbatim:
//
//	loop:
//	  tick(states[top])
//	  while states[top].done:
//	    if states[top].exitcode == 0: return SUCCESS with states[top]
//	    if top == 0: return NO_SOLUTION
//	    top := top - 1
func Search(prog vmcode.Program, base int, opts ...Option) Result {
	cfg := config{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	runID := ""
	if cfg.logf != nil {
		runID = uuid.NewString()
	}

	fr := vm.NewFrontier(cfg.capacity, base, cfg.stackMax)
	ticks := 0
	for {
		pc := fr.Top().PC
		fr.Tick(prog)
		ticks++
		cur := fr.Top()

		if cfg.logf != nil {
			var ins vmcode.Instruction
			if pc >= 0 && pc < len(prog) {
				ins = prog[pc]
			}
			cfg.logf("%s tick=%d top=%d pc=%d ins=%s stack=%v done=%v exit=%s",
				runID, ticks, fr.TopIndex(), cur.PC, ins, cur.Stack, cur.Done, cur.Exit)
		}

		for cur.Done {
			if cur.Exit == 0 {
				return Result{Solved: true, State: *cur, Ticks: ticks}
			}
			if !fr.Backtrack() {
				return Result{Solved: false, Ticks: ticks}
			}
			cur = fr.Top()
		}
	}
}
