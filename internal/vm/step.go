package vm

import "github.com/jcorbin/cryptverb/internal/vmcode"

// step executes a single non-FORK instruction against s. Fork is handled by
// Frontier.Tick instead, since it needs access to the frontier array that a
// lone State has no knowledge of (spec.md §4.3).
func step(s *State, ins vmcode.Instruction) {
	switch ins.Op {
	case vmcode.Jump:
		s.PC += int(ins.Arg)

	case vmcode.JZ:
		if v, ok := s.pop(); ok {
			if v == 0 {
				s.PC += int(ins.Arg)
			} else {
				s.PC++
			}
		}

	case vmcode.JNZ:
		if v, ok := s.pop(); ok {
			if v != 0 {
				s.PC += int(ins.Arg)
			} else {
				s.PC++
			}
		}

	case vmcode.Push:
		if s.push(ins.Arg) {
			s.PC++
		}

	case vmcode.Pop:
		if _, ok := s.pop(); ok {
			s.PC++
		}

	case vmcode.Dup:
		if v, ok := s.top(); ok {
			if s.push(v) {
				s.PC++
			}
		}

	case vmcode.Swap:
		if n := len(s.Stack); n < 2 {
			s.die(CrashStackUnderflow)
		} else {
			s.Stack[n-1], s.Stack[n-2] = s.Stack[n-2], s.Stack[n-1]
			s.PC++
		}

	case vmcode.Add:
		binary(s, func(a, b int32) int32 { return a + b })
	case vmcode.Sub:
		binary(s, func(a, b int32) int32 { return a - b })
	case vmcode.Mul:
		binary(s, func(a, b int32) int32 { return a * b })
	case vmcode.Div:
		binary(s, func(a, b int32) int32 { return a / b })
	case vmcode.Mod:
		binary(s, func(a, b int32) int32 { return a % b })
	case vmcode.LT:
		binary(s, func(a, b int32) int32 { return boolInt(a < b) })
	case vmcode.GT:
		binary(s, func(a, b int32) int32 { return boolInt(a > b) })
	case vmcode.LTE:
		binary(s, func(a, b int32) int32 { return boolInt(a <= b) })
	case vmcode.GTE:
		binary(s, func(a, b int32) int32 { return boolInt(a >= b) })

	case vmcode.Inc:
		if v, ok := s.top(); ok {
			s.setTop(v + ins.Arg)
			s.PC++
		}

	case vmcode.Dec:
		if v, ok := s.top(); ok {
			s.setTop(v - ins.Arg)
			s.PC++
		}

	case vmcode.Store:
		if v, ok := s.top(); ok {
			s.Letters[byte(ins.Arg)] = int8(v)
			s.PC++
		}

	case vmcode.Load:
		if s.push(int32(s.Letters[byte(ins.Arg)])) {
			s.PC++
		}

	case vmcode.IsSeen:
		if v, ok := s.top(); ok {
			s.setTop(boolInt(s.Seen[v]))
			s.PC++
		}

	case vmcode.SetSeen:
		if v, ok := s.top(); ok {
			was := s.Seen[v]
			s.Seen[v] = true
			s.setTop(boolInt(was))
			s.PC++
		}

	case vmcode.Exit:
		s.die(ExitCode(ins.Arg))

	default:
		s.die(CrashInvalidOp)
	}
}

// binary pops b then a (a below b on the stack) and pushes f(a, b), matching
// the source's do_op_add/sub/.../gte shape (pop top two, push one result).
func binary(s *State, f func(a, b int32) int32) {
	if n := len(s.Stack); n < 2 {
		s.die(CrashStackUnderflow)
		return
	}
	b, _ := s.pop()
	a, _ := s.pop()
	s.push(f(a, b))
	s.PC++
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
