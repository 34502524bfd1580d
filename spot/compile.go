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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// operators maps the PostScript operator names allowed in spot functions
// to opcodes.
var operators = map[string]opCode{
	"abs": opAbs, "add": opAdd, "atan": opAtan, "ceiling": opCeiling,
	"cos": opCos, "cvi": opCvi, "cvr": opCvr, "div": opDiv,
	"exp": opExp, "floor": opFloor, "idiv": opIdiv, "ln": opLn,
	"log": opLog, "mod": opMod, "mul": opMul, "neg": opNeg,
	"round": opRound, "sin": opSin, "sqrt": opSqrt, "sub": opSub,
	"truncate": opTruncate,

	"and": opAnd, "eq": opEq, "ge": opGe, "gt": opGt, "le": opLe,
	"lt": opLt, "ne": opNe, "not": opNot, "or": opOr, "xor": opXor,

	"copy": opCopy, "dup": opDup, "exch": opExch, "index": opIndex,
	"pop": opPop, "roll": opRoll,
}

// compile translates a spot function program to bytecode.
// A single pair of braces around the whole program is optional.
func compile(program string) ([]instruction, error) {
	words := fields(program)
	if len(words) >= 2 && words[0] == "{" && words[len(words)-1] == "}" {
		// Only strip the braces if they match each other.
		depth := 0
		outer := true
		for _, w := range words[:len(words)-1] {
			switch w {
			case "{":
				depth++
			case "}":
				depth--
			}
			if depth == 0 {
				outer = false
				break
			}
		}
		if outer {
			words = words[1 : len(words)-1]
		}
	}

	c := &compiler{words: words}
	code, err := c.block(false)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, errors.New("empty program")
	}
	return code, nil
}

// fields splits a program into words.  Braces are always separate words,
// and comments run from '%' to the end of the line.
func fields(src string) []string {
	var words []string
	for line := range strings.Lines(src) {
		if k := strings.IndexByte(line, '%'); k >= 0 {
			line = line[:k]
		}
		line = braces.Replace(line)
		words = append(words, strings.Fields(line)...)
	}
	return words
}

var braces = strings.NewReplacer("{", " { ", "}", " } ")

type compiler struct {
	words []string
	pos   int
}

// block compiles words up to the end of the program or, if nested is set,
// up to the matching closing brace.
func (c *compiler) block(nested bool) ([]instruction, error) {
	var code []instruction

	// procedure bodies waiting for "if" or "ifelse"
	var procs [][]instruction

	for c.pos < len(c.words) {
		w := c.words[c.pos]
		c.pos++

		switch w {
		case "{":
			body, err := c.block(true)
			if err != nil {
				return nil, err
			}
			procs = append(procs, body)
			continue

		case "}":
			if !nested {
				return nil, errors.New("unexpected '}'")
			}
			if len(procs) > 0 {
				return nil, errors.New("procedure body not used by if or ifelse")
			}
			return code, nil

		case "if":
			if len(procs) < 1 {
				return nil, errors.New("'if' needs a procedure body")
			}
			body := procs[len(procs)-1]
			procs = procs[:len(procs)-1]
			code = append(code, instruction{op: opJumpIfFalse, arg: len(body)})
			code = append(code, body...)
			continue

		case "ifelse":
			if len(procs) < 2 {
				return nil, errors.New("'ifelse' needs two procedure bodies")
			}
			yes, no := procs[len(procs)-2], procs[len(procs)-1]
			procs = procs[:len(procs)-2]
			code = append(code, instruction{op: opJumpIfFalse, arg: len(yes) + 1})
			code = append(code, yes...)
			code = append(code, instruction{op: opJump, arg: len(no)})
			code = append(code, no...)
			continue
		}

		if len(procs) > 0 {
			return nil, fmt.Errorf("procedure body before %q", w)
		}

		switch w {
		case "true":
			code = append(code, instruction{op: opPushBool, arg: 1})
		case "false":
			code = append(code, instruction{op: opPushBool})
		default:
			if x, err := strconv.ParseFloat(w, 64); err == nil && !math.IsInf(x, 0) && !math.IsNaN(x) {
				code = append(code, instruction{op: opPushReal, val: x})
				continue
			}
			op, ok := operators[w]
			if !ok {
				return nil, fmt.Errorf("unknown operator %q", w)
			}
			code = append(code, instruction{op: op})
		}
	}

	if nested {
		return nil, errors.New("missing '}'")
	}
	if len(procs) > 0 {
		return nil, errors.New("procedure body not used by if or ifelse")
	}
	return code, nil
}
