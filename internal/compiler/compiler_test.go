package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/cryptverb/internal/cryptarith"
	"github.com/jcorbin/cryptverb/internal/vm"
	"github.com/jcorbin/cryptverb/internal/vmcode"
)

func TestCompileEmitsLeadingFixBeforeInitialCarry(t *testing.T) {
	p, err := cryptarith.New("SEND", "MORE", "MONEY", 10)
	require.NoError(t, err)

	prog := Compile(p)
	require.True(t, len(prog) > 6)

	// fix M=1 without a seen-check: PUSH 1, DUP, SET_SEEN, POP, STORE 'M'
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Push, Arg: 1}, prog[0])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Dup}, prog[1])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.SetSeen}, prog[2])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Pop}, prog[3])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Store, Arg: int32('M')}, prog[4])

	// initial carry
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Push, Arg: 0}, prog[5])
}

func TestCompileFixAppliesWhenSumIsOneLonger(t *testing.T) {
	p, err := cryptarith.New("TWO", "TWO", "FOUR", 10)
	require.NoError(t, err)

	prog := Compile(p)
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Push, Arg: 1}, prog[0])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Store, Arg: int32('F')}, prog[4])
}

func TestCompileEqualLengthWordsEndsPlainExit(t *testing.T) {
	p, err := cryptarith.New("AB", "CD", "EF", 10)
	require.NoError(t, err)

	prog := Compile(p)
	last := prog[len(prog)-1]
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Exit, Arg: 0}, last)
}

// TestCompileChecksFinalAsymmetricLeftover exercises checkFinal's
// c2-leftover branch: W1 shorter than W2, W3 the same length as W2, so
// after the column walk only W2 (not W1) has a leading letter left over.
func TestCompileChecksFinalAsymmetricLeftover(t *testing.T) {
	p, err := cryptarith.New("AB", "CDE", "FGH", 10)
	require.NoError(t, err)

	prog := Compile(p)

	storedC := -1
	storedF := -1
	for i, ins := range prog {
		if ins.Op == vmcode.Store && ins.Arg == int32('C') {
			storedC = i
		}
		if ins.Op == vmcode.Store && ins.Arg == int32('F') {
			storedF = i
		}
	}
	require.NotEqual(t, -1, storedC, "W2's leftover letter C must be solved for")
	require.NotEqual(t, -1, storedF, "W3's leftover letter F must be solved for")
	assert.Less(t, storedC, storedF, "the leftover summand letter is added before W3's own leftover letter is loaded")

	last4 := prog[len(prog)-4:]
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Sub}, last4[0])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.JZ, Arg: 2}, last4[1])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Exit, Arg: int32(vm.Dead)}, last4[2])
	assert.Equal(t, vmcode.Instruction{Op: vmcode.Exit, Arg: 0}, last4[3])
}
