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

package halftone

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/knockout"
	"seehuhn.de/go/dtf/raster"
	"seehuhn.de/go/dtf/screen"
)

// Process runs the pipeline selected by opts.Mode.
// The input buffer is not modified.  On error, no output is returned.
func Process(buf *raster.Buffer, opts *Options) (*raster.Buffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch opts.mode() {
	case KnockoutMode:
		return doKnockout(buf, opts)
	default:
		return separate(buf, opts)
	}
}

// Separate splits an RGB or RGBA image into CMYK inks and screens each ink
// at its own angle.  Alpha values are ignored.
func Separate(buf *raster.Buffer, opts *Options) (*raster.Buffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return separate(buf, opts)
}

func separate(buf *raster.Buffer, opts *Options) (*raster.Buffer, error) {
	c, m, y, k, err := raster.SplitCMYK(buf)
	if err != nil {
		return nil, err
	}

	inks := [4]*raster.Channel{c, m, y, k}
	angles := opts.angles()
	var screened [4]*raster.Channel

	var g errgroup.Group
	for i, ink := range inks {
		g.Go(func() error {
			out, err := screen.Screen(ink, opts.screenConfig(angles[i]))
			if err != nil {
				return fmt.Errorf("%s ink: %w", InkNames[i], err)
			}
			screened[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.CMYKOutput {
		return raster.ToCMYKBuffer(screened[0], screened[1], screened[2], screened[3])
	}
	return raster.MergeCMYK(screened[0], screened[1], screened[2], screened[3])
}

// Knockout removes the background color given in opts.BgColor (if any) and
// screens the alpha channel.  Images without alpha channel are treated as
// opaque.  The result is an RGBA buffer with the
// original colors and alpha values 0 or 255.
func Knockout(buf *raster.Buffer, opts *Options) (*raster.Buffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return doKnockout(buf, opts)
}

func doKnockout(buf *raster.Buffer, opts *Options) (*raster.Buffer, error) {
	kc, err := opts.knockoutConfig()
	if err != nil {
		return nil, err
	}
	rgba, err := raster.ToRGBA(buf)
	if err != nil {
		return nil, err
	}
	r, g, b, a, err := raster.SplitRGBA(rgba)
	if err != nil {
		return nil, err
	}
	if kc != nil {
		a, err = knockout.Alpha(rgba, kc)
		if err != nil {
			return nil, err
		}
	}

	a, err = screen.Screen(a, opts.screenConfig(opts.Angle))
	if err != nil {
		return nil, fmt.Errorf("alpha: %w", err)
	}
	return raster.MergeRGBA(r, g, b, a)
}

// Matte returns the alpha channel of buf after background removal, before
// screening.  If opts.BgColor is empty, this is a copy of the original
// alpha channel.
func Matte(buf *raster.Buffer, opts *Options) (*raster.Channel, error) {
	kc, err := opts.knockoutConfig()
	if err != nil {
		return nil, err
	}
	rgba, err := raster.ToRGBA(buf)
	if err != nil {
		return nil, err
	}
	if kc != nil {
		return knockout.Alpha(rgba, kc)
	}
	_, _, _, a, err := raster.SplitRGBA(rgba)
	return a, err
}

// Soft applies the background removal of [KnockoutMode] to a copy of
// buf, without screening.  This shows the soft matte which the screen
// approximates.
func Soft(buf *raster.Buffer, opts *Options) (*raster.Buffer, error) {
	kc, err := opts.knockoutConfig()
	if err != nil {
		return nil, err
	}
	if kc == nil {
		return nil, dtf.Errorf(dtf.InvalidConfig, "halftone.Soft", "no background color given")
	}
	out, err := raster.ToRGBA(buf)
	if err != nil {
		return nil, err
	}
	if out == buf {
		out = buf.Clone()
	}
	if err := knockout.Apply(out, kc); err != nil {
		return nil, err
	}
	return out, nil
}
