// seehuhn.de/go/dtf - halftone separations for direct-to-film printing
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package spot

import (
	"errors"
	"math"
)

type opCode uint8

const (
	opPushReal opCode = iota
	opPushBool

	// arithmetic
	opAbs
	opAdd
	opAtan
	opCeiling
	opCos
	opCvi
	opCvr
	opDiv
	opExp
	opFloor
	opIdiv
	opLn
	opLog
	opMod
	opMul
	opNeg
	opRound
	opSin
	opSqrt
	opSub
	opTruncate

	// relational and boolean
	opAnd
	opEq
	opGe
	opGt
	opLe
	opLt
	opNe
	opNot
	opOr
	opXor

	// stack
	opCopy
	opDup
	opExch
	opIndex
	opPop
	opRoll

	// control flow, arg is the jump distance
	opJumpIfFalse
	opJump
)

type instruction struct {
	op  opCode
	arg int
	val float64
}

type valueTag uint8

const (
	tagReal valueTag = iota
	tagBool
)

// value is an element of the operand stack.  Spot functions have no
// separate integer type; integer operators require integral reals.
type value struct {
	tag valueTag
	f   float64
	b   bool
}

func realVal(x float64) value { return value{tag: tagReal, f: x} }
func boolVal(b bool) value    { return value{tag: tagBool, b: b} }

// maxStackDepth limits the operand stack.  The PostScript implementation
// limit for calculator functions is 100.
const maxStackDepth = 100

var (
	errStackUnderflow = errors.New("stack underflow")
	errStackOverflow  = errors.New("stack overflow")
	errTypeMismatch   = errors.New("type mismatch")
	errDivByZero      = errors.New("division by zero")
	errRange          = errors.New("argument out of range")
	errBadResult      = errors.New("spot function must leave exactly one number on the stack")
)

// execute runs the bytecode on the given stack and returns the final stack.
func execute(code []instruction, stack []value) ([]value, error) {
	for pc := 0; pc < len(code); pc++ {
		inst := code[pc]
		n := len(stack)

		switch inst.op {
		case opPushReal:
			stack = append(stack, realVal(inst.val))
		case opPushBool:
			stack = append(stack, boolVal(inst.arg != 0))

		case opAbs, opNeg, opCeiling, opFloor, opRound, opTruncate, opCvi, opCvr,
			opSin, opCos, opSqrt, opLn, opLog:
			if n < 1 {
				return nil, errStackUnderflow
			}
			v := &stack[n-1]
			if v.tag != tagReal {
				return nil, errTypeMismatch
			}
			r, err := unary(inst.op, v.f)
			if err != nil {
				return nil, err
			}
			v.f = r

		case opAdd, opSub, opMul, opDiv, opIdiv, opMod, opExp, opAtan:
			if n < 2 {
				return nil, errStackUnderflow
			}
			a, b := stack[n-2], stack[n-1]
			if a.tag != tagReal || b.tag != tagReal {
				return nil, errTypeMismatch
			}
			r, err := binary(inst.op, a.f, b.f)
			if err != nil {
				return nil, err
			}
			stack = stack[:n-1]
			stack[n-2] = realVal(r)

		case opGe, opGt, opLe, opLt:
			if n < 2 {
				return nil, errStackUnderflow
			}
			a, b := stack[n-2], stack[n-1]
			if a.tag != tagReal || b.tag != tagReal {
				return nil, errTypeMismatch
			}
			var r bool
			switch inst.op {
			case opGe:
				r = a.f >= b.f
			case opGt:
				r = a.f > b.f
			case opLe:
				r = a.f <= b.f
			case opLt:
				r = a.f < b.f
			}
			stack = stack[:n-1]
			stack[n-2] = boolVal(r)

		case opEq, opNe:
			if n < 2 {
				return nil, errStackUnderflow
			}
			a, b := stack[n-2], stack[n-1]
			r := a == b
			if inst.op == opNe {
				r = !r
			}
			stack = stack[:n-1]
			stack[n-2] = boolVal(r)

		case opAnd, opOr, opXor:
			if n < 2 {
				return nil, errStackUnderflow
			}
			a, b := stack[n-2], stack[n-1]
			var r value
			switch {
			case a.tag == tagBool && b.tag == tagBool:
				switch inst.op {
				case opAnd:
					r = boolVal(a.b && b.b)
				case opOr:
					r = boolVal(a.b || b.b)
				case opXor:
					r = boolVal(a.b != b.b)
				}
			case a.tag == tagReal && b.tag == tagReal:
				x, ok1 := integral(a.f)
				y, ok2 := integral(b.f)
				if !ok1 || !ok2 {
					return nil, errTypeMismatch
				}
				switch inst.op {
				case opAnd:
					r = realVal(float64(x & y))
				case opOr:
					r = realVal(float64(x | y))
				case opXor:
					r = realVal(float64(x ^ y))
				}
			default:
				return nil, errTypeMismatch
			}
			stack = stack[:n-1]
			stack[n-2] = r

		case opNot:
			if n < 1 {
				return nil, errStackUnderflow
			}
			v := &stack[n-1]
			if v.tag == tagBool {
				v.b = !v.b
			} else if x, ok := integral(v.f); ok {
				v.f = float64(^x)
			} else {
				return nil, errTypeMismatch
			}

		case opDup:
			if n < 1 {
				return nil, errStackUnderflow
			}
			stack = append(stack, stack[n-1])

		case opExch:
			if n < 2 {
				return nil, errStackUnderflow
			}
			stack[n-2], stack[n-1] = stack[n-1], stack[n-2]

		case opPop:
			if n < 1 {
				return nil, errStackUnderflow
			}
			stack = stack[:n-1]

		case opCopy:
			k, err := count(stack)
			if err != nil {
				return nil, err
			}
			stack = stack[:n-1]
			if k > n-1 {
				return nil, errStackUnderflow
			}
			stack = append(stack, stack[n-1-k:n-1]...)

		case opIndex:
			k, err := count(stack)
			if err != nil {
				return nil, err
			}
			if k >= n-1 {
				return nil, errStackUnderflow
			}
			stack[n-1] = stack[n-2-k]

		case opRoll:
			if n < 2 {
				return nil, errStackUnderflow
			}
			j, ok := integral(stack[n-1].f)
			if stack[n-1].tag != tagReal || !ok {
				return nil, errTypeMismatch
			}
			k, err := count(stack[:n-1])
			if err != nil {
				return nil, err
			}
			stack = stack[:n-2]
			if k > len(stack) {
				return nil, errStackUnderflow
			}
			if k > 0 {
				roll(stack[len(stack)-k:], int(((j%int64(k))+int64(k))%int64(k)))
			}

		case opJumpIfFalse:
			if n < 1 {
				return nil, errStackUnderflow
			}
			cond := stack[n-1]
			if cond.tag != tagBool {
				return nil, errTypeMismatch
			}
			stack = stack[:n-1]
			if !cond.b {
				pc += inst.arg
			}

		case opJump:
			pc += inst.arg
		}

		if len(stack) > maxStackDepth {
			return nil, errStackOverflow
		}
	}
	return stack, nil
}

func unary(op opCode, x float64) (float64, error) {
	switch op {
	case opAbs:
		return math.Abs(x), nil
	case opNeg:
		return -x, nil
	case opCeiling:
		return math.Ceil(x), nil
	case opFloor:
		return math.Floor(x), nil
	case opRound:
		// PostScript rounds halves towards positive infinity
		return math.Floor(x + 0.5), nil
	case opTruncate, opCvi:
		return math.Trunc(x), nil
	case opCvr:
		return x, nil
	case opSin:
		return math.Sin(x * math.Pi / 180), nil
	case opCos:
		return math.Cos(x * math.Pi / 180), nil
	case opSqrt:
		if x < 0 {
			return 0, errRange
		}
		return math.Sqrt(x), nil
	case opLn, opLog:
		if x <= 0 {
			return 0, errRange
		}
		if op == opLn {
			return math.Log(x), nil
		}
		return math.Log10(x), nil
	}
	panic("unreachable")
}

func binary(op opCode, a, b float64) (float64, error) {
	switch op {
	case opAdd:
		return a + b, nil
	case opSub:
		return a - b, nil
	case opMul:
		return a * b, nil
	case opDiv:
		if b == 0 {
			return 0, errDivByZero
		}
		return a / b, nil
	case opIdiv, opMod:
		x, ok1 := integral(a)
		y, ok2 := integral(b)
		if !ok1 || !ok2 {
			return 0, errTypeMismatch
		}
		if y == 0 {
			return 0, errDivByZero
		}
		if op == opIdiv {
			return float64(x / y), nil
		}
		return float64(x % y), nil
	case opExp:
		r := math.Pow(a, b)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, errRange
		}
		return r, nil
	case opAtan:
		if a == 0 && b == 0 {
			return 0, errRange
		}
		deg := math.Atan2(a, b) * 180 / math.Pi
		if deg < 0 {
			deg += 360
		}
		return deg, nil
	}
	panic("unreachable")
}

// integral reports whether x is an integer which fits into an int64.
func integral(x float64) (int64, bool) {
	if x != math.Trunc(x) || math.Abs(x) > 1<<53 {
		return 0, false
	}
	return int64(x), true
}

// count returns the non-negative integer at the top of the stack.
func count(stack []value) (int, error) {
	if len(stack) < 1 {
		return 0, errStackUnderflow
	}
	v := stack[len(stack)-1]
	if v.tag != tagReal {
		return 0, errTypeMismatch
	}
	k, ok := integral(v.f)
	if !ok {
		return 0, errTypeMismatch
	}
	if k < 0 || k > maxStackDepth {
		return 0, errRange
	}
	return int(k), nil
}

// roll rotates s by j positions towards the top of the stack.
func roll(s []value, j int) {
	if j == 0 {
		return
	}
	tmp := make([]value, len(s))
	for i, v := range s {
		tmp[(i+j)%len(s)] = v
	}
	copy(s, tmp)
}
