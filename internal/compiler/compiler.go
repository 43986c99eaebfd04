// Package compiler translates a validated puzzle into a program for the
// search VM: a column-by-column long-addition walk with BFS-style digit
// choice and early pruning via the seen-digit set.
package compiler

import (
	"github.com/jcorbin/cryptverb/internal/cryptarith"
	"github.com/jcorbin/cryptverb/internal/vm"
	"github.com/jcorbin/cryptverb/internal/vmcode"
)

type builder struct {
	prog  vmcode.Program
	known map[byte]bool
	base  int32
	first map[byte]bool
}

func (b *builder) emit(op vmcode.Opcode, arg int32) {
	b.prog = append(b.prog, vmcode.Instruction{Op: op, Arg: arg})
}

// fix forces c to digit, optionally checking it hasn't already been used.
// The leftover digit value is left on the stack below whatever the rest of
// compilation pushes -- a single wasted slot for the lifetime of the
// program, inherited from how the column walk never bothers to pop it.
func (b *builder) fix(c byte, digit int32, checkSeen bool) {
	b.emit(vmcode.Push, digit)
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.SetSeen, 0)
	if checkSeen {
		b.emit(vmcode.JZ, 2)
		b.emit(vmcode.Exit, int32(vm.Dead))
	} else {
		b.emit(vmcode.Pop, 0)
	}
	b.emit(vmcode.Store, int32(c))
	b.known[c] = true
}

// choose enumerates candidate digits for c via FORK: one fork per possible
// digit, excluding zero when c leads a word. Each child prunes itself if
// its candidate digit is already seen; the parent (fork token 0) always
// dies, having served only to create its children.
func (b *builder) choose(c byte) {
	forks := b.base
	if b.first[c] {
		forks--
	}
	b.emit(vmcode.Fork, forks)
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.JNZ, 2)
	b.emit(vmcode.Exit, int32(vm.Dead))
	if !b.first[c] {
		b.emit(vmcode.Dec, 1)
	}
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.SetSeen, 0)
	b.emit(vmcode.JZ, 2)
	b.emit(vmcode.Exit, int32(vm.Dead))
	b.emit(vmcode.Store, int32(c))
	b.known[c] = true
}

func (b *builder) loadOrChoose(c byte) {
	if b.known[c] {
		b.emit(vmcode.Load, int32(c))
		return
	}
	b.choose(c)
}

// solveSum derives c3 from c1, c2, and the running carry: [carry] -> [carry'].
func (b *builder) solveSum(c1, c2, c3 byte) {
	b.loadOrChoose(c1)
	b.emit(vmcode.Add, 0)
	b.loadOrChoose(c2)
	b.emit(vmcode.Add, 0)
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.Push, b.base)
	b.emit(vmcode.Mod, 0)
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.SetSeen, 0)
	b.emit(vmcode.JZ, 2)
	b.emit(vmcode.Exit, int32(vm.Dead))
	b.emit(vmcode.Store, int32(c3))
	b.emit(vmcode.Pop, 0)
	b.emit(vmcode.Push, b.base)
	b.emit(vmcode.Div, 0)
	b.known[c3] = true
}

// solveSummand derives c1 from c2, the known c3, and the running carry, via
// the identity c1 = base - (carry + c2 - c3) (mod base).
func (b *builder) solveSummand(c1, c2, c3 byte) {
	b.loadOrChoose(c2)
	b.emit(vmcode.Add, 0)
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.Load, int32(c3))
	b.emit(vmcode.Sub, 0)
	b.emit(vmcode.Push, b.base)
	b.emit(vmcode.Swap, 0)
	b.emit(vmcode.Sub, 0)
	b.emit(vmcode.Push, b.base)
	b.emit(vmcode.Mod, 0)
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.SetSeen, 0)
	b.emit(vmcode.JZ, 2)
	b.emit(vmcode.Exit, int32(vm.Dead))
	b.emit(vmcode.Store, int32(c1))
	b.emit(vmcode.Add, 0)
	b.emit(vmcode.Push, b.base)
	b.emit(vmcode.Div, 0)
	b.known[c1] = true
}

// checkSum verifies a column where c1, c2, c3 are all already known.
func (b *builder) checkSum(c1, c2, c3 byte) {
	b.emit(vmcode.Load, int32(c1))
	b.emit(vmcode.Add, 0)
	b.emit(vmcode.Load, int32(c2))
	b.emit(vmcode.Add, 0)
	b.emit(vmcode.Dup, 0)
	b.emit(vmcode.Push, b.base)
	b.emit(vmcode.Mod, 0)
	b.emit(vmcode.Load, int32(c3))
	b.emit(vmcode.Sub, 0)
	b.emit(vmcode.JZ, 2)
	b.emit(vmcode.Exit, int32(vm.Dead))
	b.emit(vmcode.Push, b.base)
	b.emit(vmcode.Div, 0)
}

// checkFinal verifies W3's extra leading letter against the surviving
// carry and whichever summand still has a leftover letter, if any.
//
// The source this is ported from has two bugs in this one column, both
// invisible on equal-length summands (the only shape ever tested, where
// both leftovers are zero) and both live exactly when one summand has a
// leftover letter and the other doesn't:
//
//   - it loads c1 in both the c1-leftover and the c2-leftover branch, so a
//     c2-only leftover was silently checked against the wrong letter; the
//     second branch here loads c2, as the surrounding logic clearly
//     intends.
//   - it adds the leftover to c3 and subtracts that from the carry
//     (carry == c3+leftover), rather than adding the leftover to the
//     carry and subtracting c3 (carry+leftover == c3) -- the actual
//     long-addition identity for this column. Reordering the load of c3
//     to after the optional add fixes the sign without changing the
//     zero-leftover case at all.
//
// Loading c3 via load-or-choose rather than a bare load also covers the
// case where c3 itself was never pre-fixed (true whenever W3 is only as
// long as its longer summand, rather than one letter longer still).
func (b *builder) checkFinal(c1, c2, c3 byte) {
	switch {
	case c1 != 0:
		b.loadOrChoose(c1)
		b.emit(vmcode.Add, 0)
	case c2 != 0:
		b.loadOrChoose(c2)
		b.emit(vmcode.Add, 0)
	}
	b.loadOrChoose(c3)
	b.emit(vmcode.Sub, 0)
	b.emit(vmcode.JZ, 2)
	b.emit(vmcode.Exit, int32(vm.Dead))
	b.emit(vmcode.Exit, 0)
}

// Compile emits a program implementing p's column-by-column long addition.
func Compile(p cryptarith.Puzzle) vmcode.Program {
	b := &builder{
		known: make(map[byte]bool),
		base:  int32(p.Base),
		first: map[byte]bool{p.W1[0]: true, p.W2[0]: true, p.W3[0]: true},
	}

	i1, i2, i3 := len(p.W1), len(p.W2), len(p.W3)

	if i3 > i1 && i3 > i2 {
		b.fix(p.W3[0], 1, false)
	}

	b.emit(vmcode.Push, 0) // initial carry

	for i1 > 0 && i2 > 0 && i3 > 0 {
		i1--
		i2--
		i3--
		c1, c2, c3 := p.W1[i1], p.W2[i2], p.W3[i3]
		// A letter repeated within the column is chosen up front (its digit
		// popped again), so that solveSum/solveSummand never derive and
		// re-store a letter they have just chosen themselves.
		switch {
		case !b.known[c3] && (c3 == c1 || c3 == c2):
			b.choose(c3)
			b.emit(vmcode.Pop, 0)
		case b.known[c3] && !b.known[c1] && c1 == c2:
			b.choose(c1)
			b.emit(vmcode.Pop, 0)
		}
		switch {
		case !b.known[c3]:
			b.solveSum(c1, c2, c3)
		case !b.known[c1]:
			b.solveSummand(c1, c2, c3)
		case !b.known[c2]:
			b.solveSummand(c2, c1, c3)
		default:
			b.checkSum(c1, c2, c3)
		}
	}

	if i3 > 0 {
		i3--
		var leftover1, leftover2 byte
		if i1 > 0 {
			i1--
			leftover1 = p.W1[i1]
		}
		if i2 > 0 {
			i2--
			leftover2 = p.W2[i2]
		}
		b.checkFinal(leftover1, leftover2, p.W3[i3])
	} else {
		b.emit(vmcode.Exit, 0)
	}

	return b.prog
}
