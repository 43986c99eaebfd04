package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/cryptverb/internal/vmcode"
)

func TestForkThenAllChildrenDeadBacktracksToParent(t *testing.T) {
	prog := vmcode.Program{
		{Op: vmcode.Fork, Arg: 3},  // 0
		{Op: vmcode.Exit, Arg: 99}, // 1: every branch lands here next
	}
	fr := NewFrontier(16, 10, 0)

	fr.Tick(prog) // FORK 3: parent gets token 0, three children above it
	assert.Equal(t, 3, fr.TopIndex())

	// run each child to its EXIT, backtracking after each
	for fr.TopIndex() > 0 {
		fr.Tick(prog)
		assert.True(t, fr.Top().Done)
		assert.Equal(t, ExitCode(99), fr.Top().Exit)
		ok := fr.Backtrack()
		assert.True(t, ok)
	}

	// parent is now current, pc one past FORK, stack-top 0
	parent := fr.Top()
	assert.False(t, parent.Done)
	assert.Equal(t, 1, parent.PC)
	assert.Equal(t, int32(0), parent.Stack[len(parent.Stack)-1])

	fr.Tick(prog)
	assert.True(t, fr.Top().Done)
	assert.Equal(t, ExitCode(99), fr.Top().Exit)
	assert.False(t, fr.Backtrack())
}

func TestForkSearchOverflow(t *testing.T) {
	fr := NewFrontier(2, 10, 0)
	prog := vmcode.Program{{Op: vmcode.Fork, Arg: 5}}
	fr.Tick(prog)
	assert.True(t, fr.Top().Done)
	assert.Equal(t, CrashSearchOverflow, fr.Top().Exit)
}

func TestTickInvalidPC(t *testing.T) {
	fr := NewFrontier(4, 10, 0)
	fr.Tick(vmcode.Program{})
	assert.True(t, fr.Top().Done)
	assert.Equal(t, CrashInvalidPI, fr.Top().Exit)
}

func TestBacktrackMonotonicPC(t *testing.T) {
	prog := vmcode.Program{
		{Op: vmcode.Fork, Arg: 1},
		{Op: vmcode.Exit, Arg: 1},
	}
	fr := NewFrontier(8, 10, 0)
	forkPC := fr.Top().PC
	fr.Tick(prog)
	fr.Tick(prog) // child dies
	fr.Backtrack()
	assert.Greater(t, fr.Top().PC, forkPC)
}
