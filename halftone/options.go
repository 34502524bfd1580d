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

// Package halftone turns images into halftone separations suitable for
// direct-to-film printing.
//
// Two modes are supported.  In [SeparationMode] the image is split into
// cyan, magenta, yellow and black ink channels, each ink is screened at
// its own angle, and the screened inks are recombined into an RGB preview
// (or an interleaved CMYK buffer).  In [KnockoutMode] an optional
// background color is removed and the alpha channel is screened, so that
// partial transparency becomes a pattern of fully opaque dots.
package halftone

import (
	"fmt"
	"math"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/knockout"
	"seehuhn.de/go/dtf/screen"
)

// Mode selects the processing pipeline.
type Mode string

// These are the supported modes.
const (
	SeparationMode Mode = "separation"
	KnockoutMode   Mode = "knockout"
)

// DefaultAngles gives the screen angles for the cyan, magenta, yellow and
// black inks, in degrees.
var DefaultAngles = [4]float64{15, 75, 90, 45}

// DefaultTolerance is the knockout tolerance used by the command line
// tool.
const DefaultTolerance = 50

// InkNames lists the names of the ink channels, in the order used by
// [Options.Angles].
var InkNames = [4]string{"cyan", "magenta", "yellow", "black"}

// Options controls the halftone pipeline.
type Options struct {
	// Mode selects the pipeline.  The zero value means [SeparationMode].
	Mode Mode

	// LPI is the screen frequency in lines per inch.  This must be
	// positive.
	LPI float64

	// Angle is the screen angle in degrees, used in [KnockoutMode].
	Angle float64

	// Angles optionally overrides [DefaultAngles] in [SeparationMode].
	// If set, it must have exactly four entries.
	Angles []float64

	// Shape is the screen shape.  The zero value means [screen.Round].
	Shape screen.Shape

	// CellScale, Spot and Cutoff are passed on to [screen.Config].
	CellScale float64
	Spot      string
	Cutoff    float64

	// BgColor is the background color for [KnockoutMode], in one of the
	// forms accepted by [knockout.ParseColor].  If BgColor is empty, the
	// alpha channel is screened without background removal.
	BgColor string

	// Tolerance is the color distance over which the knockout fades in.
	// It must be positive if BgColor is set.
	Tolerance float64

	// CMYKOutput makes [Separate] return the screened inks as a CMYK
	// buffer instead of an RGB preview.
	CMYKOutput bool
}

// DefaultOptions returns the options used by the command line tool, if no
// flags are given.
func DefaultOptions() *Options {
	return &Options{
		Mode:      SeparationMode,
		LPI:       screen.DefaultFrequency,
		Angle:     DefaultAngles[3],
		Shape:     screen.Round,
		Cutoff:    screen.DefaultCutoff,
		Tolerance: DefaultTolerance,
	}
}

// Validate checks the options for consistency.
func (opts *Options) Validate() error {
	const op = "halftone.Options"
	switch opts.mode() {
	case SeparationMode, KnockoutMode:
	default:
		return dtf.Errorf(dtf.InvalidConfig, op, "unknown mode %q", opts.Mode)
	}
	if opts.Angles != nil {
		if len(opts.Angles) != 4 {
			return dtf.Errorf(dtf.InvalidConfig, op, "need 4 screen angles, got %d", len(opts.Angles))
		}
		for _, a := range opts.Angles {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return dtf.Errorf(dtf.InvalidConfig, op, "invalid screen angle %g", a)
			}
		}
	}
	cfg := opts.screenConfig(opts.Angle)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := opts.knockoutConfig(); err != nil {
		return err
	}
	return nil
}

func (opts *Options) mode() Mode {
	if opts.Mode == "" {
		return SeparationMode
	}
	return opts.Mode
}

func (opts *Options) angles() [4]float64 {
	if opts.Angles == nil {
		return DefaultAngles
	}
	return [4]float64(opts.Angles)
}

func (opts *Options) screenConfig(angle float64) screen.Config {
	return screen.Config{
		Frequency: opts.LPI,
		Angle:     angle,
		Shape:     opts.Shape,
		CellScale: opts.CellScale,
		Spot:      opts.Spot,
		Cutoff:    opts.Cutoff,
	}
}

// knockoutConfig returns nil if no background color is set.
func (opts *Options) knockoutConfig() (*knockout.Config, error) {
	if opts.BgColor == "" {
		return nil, nil
	}
	target, err := knockout.ParseColor(opts.BgColor)
	if err != nil {
		return nil, err
	}
	cfg := &knockout.Config{Target: target, Tolerance: opts.Tolerance}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (opts *Options) String() string {
	switch opts.mode() {
	case KnockoutMode:
		s := fmt.Sprintf("knockout %s screen, %g lpi at %g°", opts.shapeName(), opts.LPI, opts.Angle)
		if opts.BgColor != "" {
			s += fmt.Sprintf(", background %s±%g", opts.BgColor, opts.Tolerance)
		}
		return s
	default:
		a := opts.angles()
		return fmt.Sprintf("separation %s screen, %g lpi, angles C%g M%g Y%g K%g",
			opts.shapeName(), opts.LPI, a[0], a[1], a[2], a[3])
	}
}

func (opts *Options) shapeName() screen.Shape {
	if opts.Shape == "" {
		return screen.Round
	}
	return opts.Shape
}
