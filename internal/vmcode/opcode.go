// Package vmcode defines the fixed instruction set executed by the search
// VM: a closed set of opcodes, an (op, arg) instruction pair, and a
// read-only program built by the compiler.
package vmcode

import "fmt"

// Opcode tags a single VM instruction. The set is closed: every value in
// [Jump, Exit] is valid, and Compile-produced Instructions can only ever
// carry one of these, so "invalid opcode" can only arise from a malformed
// literal -- the VM still defends against that at the dispatch boundary,
// matching the source's do_op_invalid fallback.
type Opcode uint8

const (
	Jump Opcode = iota + 1
	JZ
	JNZ

	Push
	Pop
	Dup
	Swap

	Add
	Sub
	Mul
	Div
	Mod
	LT
	GT
	LTE
	GTE
	Inc
	Dec

	Store
	Load
	IsSeen
	SetSeen

	Fork
	Exit
)

var names = [...]string{
	Jump:     "jump",
	JZ:       "jz",
	JNZ:      "jnz",
	Push:     "push",
	Pop:      "pop",
	Dup:      "dup",
	Swap:     "swap",
	Add:      "add",
	Sub:      "sub",
	Mul:      "mul",
	Div:      "div",
	Mod:      "mod",
	LT:       "lt",
	GT:       "gt",
	LTE:      "lte",
	GTE:      "gte",
	Inc:      "inc",
	Dec:      "dec",
	Store:    "store",
	Load:     "load",
	IsSeen:   "is_seen",
	SetSeen:  "set_seen",
	Fork:     "fork",
	Exit:     "exit",
}

// Valid reports whether op is a recognised opcode.
func (op Opcode) Valid() bool {
	return int(op) > 0 && int(op) < len(names) && names[op] != ""
}

// String renders op's mnemonic, or a diagnostic placeholder if unrecognised.
func (op Opcode) String() string {
	if op.Valid() {
		return names[op]
	}
	return fmt.Sprintf("INVALID(%d)", uint8(op))
}

// argOps holds the opcodes whose instruction carries a meaningful arg, for
// disassembly formatting.
var argOps = map[Opcode]bool{
	Jump: true, JZ: true, JNZ: true,
	Push: true, Inc: true, Dec: true,
	Store: true, Load: true,
	Fork: true, Exit: true,
}

// Instruction is a single (opcode, argument) pair. Arg is a letter byte for
// Store/Load, a fork count for Fork, a jump offset (possibly negative) for
// Jump/JZ/JNZ, an exit code for Exit, or a literal value for Push/Inc/Dec.
type Instruction struct {
	Op  Opcode
	Arg int32
}

// Program is a finite, ordered, immutable sequence of instructions indexed
// by PC.
type Program []Instruction

// String renders a single instruction as "op arg" or bare "op" when its arg
// carries no meaning, matching the source's prog_toString.
func (ins Instruction) String() string {
	if argOps[ins.Op] {
		return fmt.Sprintf("%s %d", ins.Op, ins.Arg)
	}
	return ins.Op.String()
}

// Disassemble renders prog as one "PC: instruction" line per entry, for the
// --dump diagnostic affordance (spec.md §6: "debugging affordances, not
// part of the contract").
func (prog Program) Disassemble() string {
	var buf []byte
	for pc, ins := range prog {
		buf = append(buf, fmt.Sprintf("%4d: %s\n", pc, ins)...)
	}
	return string(buf)
}
