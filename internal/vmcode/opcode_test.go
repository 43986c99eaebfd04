package vmcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeValid(t *testing.T) {
	assert.True(t, Jump.Valid())
	assert.True(t, Exit.Valid())
	assert.False(t, Opcode(0).Valid())
	assert.False(t, Opcode(200).Valid())
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "fork", Fork.String())
	assert.Contains(t, Opcode(200).String(), "INVALID")
}

func TestInstructionString(t *testing.T) {
	assert.Equal(t, "push 3", Instruction{Op: Push, Arg: 3}.String())
	assert.Equal(t, "add", Instruction{Op: Add}.String())
}

func TestDisassemble(t *testing.T) {
	prog := Program{
		{Op: Push, Arg: 1},
		{Op: Exit, Arg: 0},
	}
	out := prog.Disassemble()
	assert.Equal(t, "   0: push 1\n   1: exit 0\n", out)
}
