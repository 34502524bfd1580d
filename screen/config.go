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

// Package screen converts continuous-tone channels into binary halftone
// channels.
//
// Periodic screens ([Line], [Round] and [Spot]) rotate the channel by the
// screen angle, compare it against a threshold grid, and rotate the result
// back.  The [Diffusion] screen uses Floyd-Steinberg error diffusion
// instead.  All screens map every sample to either 0 or 255 and preserve
// the channel size.
package screen

import (
	"math"
	"strings"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/spot"
)

// BaseDensity is the sampling density, in pixels per inch, which is used
// to convert screen frequencies into cell sizes.
const BaseDensity = 300

// DefaultFrequency is the default screen frequency in lines per inch.
const DefaultFrequency = 45

// DefaultCutoff is the fraction of the darkest and of the lightest samples
// which the diffusion screen discards before stretching the contrast.
const DefaultCutoff = 0.10

// DefaultSpot is the spot function used by the [Spot] shape if none is
// given.
const DefaultSpot = "SimpleDot"

// Shape selects the screening method.
type Shape string

// These are the supported screen shapes.
const (
	// Line produces parallel lines, along the screen angle.
	Line Shape = "line"

	// Round produces a checkerboard of round dots.
	Round Shape = "round"

	// Diffusion uses error diffusion.  The screen frequency and angle are
	// not used.
	Diffusion Shape = "diffusion"

	// Spot produces dots of the form given by a PostScript spot function.
	Spot Shape = "spot"
)

// Shapes lists all supported screen shapes.
var Shapes = []Shape{Line, Round, Diffusion, Spot}

// ParseShape converts a shape name into a Shape.
// Names are case-insensitive.
func ParseShape(name string) (Shape, error) {
	s := Shape(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case Line, Round, Diffusion, Spot:
		return s, nil
	}
	return "", dtf.Errorf(dtf.UnsupportedShape, "screen.ParseShape", "%q", name)
}

// Config describes a halftone screen.
type Config struct {
	// Frequency is the screen frequency in lines per inch.
	// This must be positive.
	Frequency float64

	// Angle is the screen angle in degrees, counterclockwise.
	// Values outside [0, 360) are reduced modulo 360.
	Angle float64

	// Shape selects the screening method.  The zero value means [Round].
	Shape Shape

	// CellScale multiplies the size of the screen cells.
	// The zero value means 1.
	CellScale float64

	// Spot is the name of a predefined spot function, or a PostScript
	// program, for the [Spot] shape.  The zero value means [DefaultSpot].
	Spot string

	// Cutoff is the fraction of samples discarded at each end of the
	// histogram by the [Diffusion] shape.  The zero value means
	// [DefaultCutoff], negative values disable clipping.
	Cutoff float64
}

// Validate checks that the configuration can be used for screening.
func (cfg *Config) Validate() error {
	const op = "screen.Config"
	if !(cfg.Frequency > 0) || math.IsInf(cfg.Frequency, 0) {
		return dtf.Errorf(dtf.InvalidConfig, op, "frequency %g is not a positive number", cfg.Frequency)
	}
	if math.IsNaN(cfg.Angle) || math.IsInf(cfg.Angle, 0) {
		return dtf.Errorf(dtf.InvalidConfig, op, "invalid angle %g", cfg.Angle)
	}
	if cfg.CellScale < 0 || math.IsNaN(cfg.CellScale) || math.IsInf(cfg.CellScale, 0) {
		return dtf.Errorf(dtf.InvalidConfig, op, "invalid cell scale %g", cfg.CellScale)
	}
	if math.IsNaN(cfg.Cutoff) || cfg.Cutoff >= 0.5 {
		return dtf.Errorf(dtf.InvalidConfig, op, "cutoff %g must be less than 0.5", cfg.Cutoff)
	}
	switch cfg.shape() {
	case Line, Round, Diffusion:
	case Spot:
		_, err := cfg.spotFunc()
		return err
	default:
		return dtf.Errorf(dtf.UnsupportedShape, op, "%q", cfg.Shape)
	}
	return nil
}

func (cfg *Config) shape() Shape {
	if cfg.Shape == "" {
		return Round
	}
	return cfg.Shape
}

// scale returns the half-period of the screen in pixels.
func (cfg *Config) scale() float64 {
	s := BaseDensity / cfg.Frequency
	if cfg.CellScale > 0 {
		s *= cfg.CellScale
	}
	return s
}

// angle returns the screen angle, reduced to [0, 360).
func (cfg *Config) angle() float64 {
	a := math.Mod(cfg.Angle, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 { // rounding for tiny negative inputs
		a = 0
	}
	return a
}

func (cfg *Config) cutoff() float64 {
	switch {
	case cfg.Cutoff == 0:
		return DefaultCutoff
	case cfg.Cutoff < 0:
		return 0
	default:
		return cfg.Cutoff
	}
}

// spotFunc resolves the spot function for the Spot shape.  Names of
// predefined spot functions are tried first, anything else is compiled as
// a PostScript program.
func (cfg *Config) spotFunc() (*spot.Func, error) {
	name := cfg.Spot
	if name == "" {
		name = DefaultSpot
	}
	f, err := spot.Lookup(name)
	if err == nil {
		return f, nil
	}
	if !strings.ContainsAny(name, " \t\n{") {
		return nil, err
	}
	return spot.Compile(name)
}
