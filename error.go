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

package dtf

import (
	"errors"
	"fmt"
)

// Kind classifies the errors returned by this module.
type Kind int

// These are the supported error kinds.
const (
	// InvalidFormat indicates an unsupported channel count or a corrupt
	// pixel buffer.
	InvalidFormat Kind = iota + 1

	// DimensionMismatch indicates that channels of different size were
	// passed to a merge step.
	DimensionMismatch

	// InvalidConfig indicates an out-of-range configuration value, for
	// example a non-positive frequency or tolerance, or a malformed color.
	InvalidConfig

	// UnsupportedShape indicates an unknown screen shape or spot function.
	UnsupportedShape
)

func (k Kind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid format"
	case DimensionMismatch:
		return "dimension mismatch"
	case InvalidConfig:
		return "invalid configuration"
	case UnsupportedShape:
		return "unsupported shape"
	default:
		return fmt.Sprintf("dtf.Kind(%d)", int(k))
	}
}

// Error is the error type used throughout this module.
type Error struct {
	Kind Kind

	// Op names the operation which failed, for example "SplitCMYK".
	Op string

	// Msg gives details.  It may be empty.
	Msg string
}

func (err *Error) Error() string {
	msg := err.Kind.String()
	if err.Op != "" {
		msg = err.Op + ": " + msg
	}
	if err.Msg != "" {
		msg += ": " + err.Msg
	}
	return msg
}

// Is reports whether target is an [*Error] of the same kind.
// This allows to use the sentinel values with [errors.Is].
func (err *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == err.Kind
}

// Sentinel values for use with [errors.Is].
var (
	ErrInvalidFormat     = &Error{Kind: InvalidFormat}
	ErrDimensionMismatch = &Error{Kind: DimensionMismatch}
	ErrInvalidConfig     = &Error{Kind: InvalidConfig}
	ErrUnsupportedShape  = &Error{Kind: UnsupportedShape}
)

// Errorf returns a new [*Error] of the given kind.
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of the first [*Error] found in err's tree,
// or 0 if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
