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

// Package spot evaluates halftone spot functions.
//
// A spot function maps a position (x, y) in the halftone cell [-1, 1]x[-1, 1]
// to a value in [-1, 1].  When the ink coverage of a cell grows, positions
// with larger values are inked first.  Spot functions are written in the
// subset of PostScript which PDF allows for calculator functions, for
// example "dup mul exch dup mul add 1 exch sub" for the simple round dot.
//
// The predefined spot functions of PDF 2.0 are available via [Lookup].
// Custom programs can be compiled with [Compile].
package spot

import (
	"math"
	"sync"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/dtf"
)

// Func is a compiled spot function.
// A Func is safe for concurrent use.
type Func struct {
	// Name is the name of a predefined spot function, or empty for custom
	// programs.
	Name string

	// Program is the PostScript source code.
	Program string

	code []instruction
}

// Compile translates a PostScript calculator program into a spot function.
// The program may optionally be enclosed in braces.
func Compile(program string) (*Func, error) {
	code, err := compile(program)
	if err != nil {
		return nil, dtf.Errorf(dtf.InvalidConfig, "spot.Compile", "%v", err)
	}
	return &Func{Program: program, code: code}, nil
}

// Eval evaluates the spot function at (x, y).  The inputs are clipped to
// [-1, 1], and so is the result.
func (f *Func) Eval(x, y float64) (float64, error) {
	var buf [16]value
	stack := append(buf[:0], realVal(clip(x)), realVal(clip(y)))
	stack, err := execute(f.code, stack)
	if err == nil && (len(stack) != 1 || stack[0].tag != tagReal) {
		err = errBadResult
	}
	if err != nil {
		return 0, dtf.Errorf(dtf.InvalidConfig, "spot.Eval", "at (%.3f, %.3f): %v", x, y, err)
	}
	return clip(stack[0].f), nil
}

// Sample evaluates f on the centers of an n×n grid covering the halftone
// cell.  The value for grid position (i, j) is stored at index j*n+i,
// where i runs along x and j along y.
func (f *Func) Sample(n int) ([]float64, error) {
	res := make([]float64, n*n)
	for j := range n {
		y := (float64(j)+0.5)*2/float64(n) - 1
		for i := range n {
			x := (float64(i)+0.5)*2/float64(n) - 1
			v, err := f.Eval(x, y)
			if err != nil {
				return nil, err
			}
			res[j*n+i] = v
		}
	}
	return res, nil
}

// Lookup returns the predefined spot function with the given name.
func Lookup(name string) (*Func, error) {
	f, ok := builtin()[name]
	if !ok {
		return nil, dtf.Errorf(dtf.UnsupportedShape, "spot.Lookup", "unknown spot function %q", name)
	}
	return f, nil
}

// Names returns the names of all predefined spot functions, in
// alphabetical order.
func Names() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var builtin = sync.OnceValue(func() map[string]*Func {
	res := make(map[string]*Func, len(programs))
	for name, program := range programs {
		code, err := compile(program)
		if err != nil {
			panic("spot function " + name + ": " + err.Error())
		}
		res[name] = &Func{Name: name, Program: program, code: code}
	}
	return res
})

// programs lists the predefined spot functions of PDF 2.0 (section 10.6.5.2).
var programs = map[string]string{
	"SimpleDot":         "dup mul exch dup mul add 1 exch sub",
	"InvertedSimpleDot": "dup mul exch dup mul add 1 sub",
	"DoubleDot":         "360 mul sin 2 div exch 360 mul sin 2 div add",
	"InvertedDoubleDot": "360 mul sin 2 div exch 360 mul sin 2 div add neg",
	"CosineDot":         "180 mul cos exch 180 mul cos add 2 div",
	"Double":            "360 mul sin 2 div exch 2 div 360 mul sin 2 div add",
	"InvertedDouble":    "360 mul sin 2 div exch 2 div 360 mul sin 2 div add neg",
	"Line":              "exch pop abs neg",
	"LineX":             "pop",
	"LineY":             "exch pop",
	"Round": `abs exch abs 2 copy add 1 le
		{ dup mul exch dup mul add 1 exch sub }
		{ 1 sub dup mul exch 1 sub dup mul add 1 sub }
		ifelse`,
	"Ellipse": `abs exch abs 2 copy 3 mul exch 4 mul add 3 sub dup 0 lt
		{ pop dup mul exch 0.75 div dup mul add 4 div 1 exch sub }
		{ dup 1 gt
			{ pop 1 exch sub dup mul exch 1 exch sub 0.75 div dup mul add 4 div 1 sub }
			{ 0.5 exch sub exch pop exch pop }
			ifelse }
		ifelse`,
	"EllipseA":         "dup mul 0.9 mul exch dup mul add 1 exch sub",
	"InvertedEllipseA": "dup mul 0.9 mul exch dup mul add 1 sub",
	"EllipseB":         "dup 5 mul 8 div mul exch dup mul exch add sqrt 1 exch sub",
	"EllipseC":         "dup mul exch dup mul 0.9 mul add 1 exch sub",
	"InvertedEllipseC": "dup mul exch dup mul 0.9 mul add 1 sub",
	"Square":           "abs exch abs 2 copy lt { exch } if pop neg",
	"Cross":            "abs exch abs 2 copy gt { exch } if pop neg",
	"Rhomboid":         "abs exch abs 0.9 mul add 2 div",
	"Diamond": `abs exch abs 2 copy add 0.75 le
		{ dup mul exch dup mul add 1 exch sub }
		{ 2 copy add 1.23 le
			{ 0.85 mul add 1 exch sub }
			{ 1 sub dup mul exch 1 sub dup mul add 1 sub }
			ifelse }
		ifelse`,
}

func clip(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(-1, min(1, v))
}
