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

// Package knockout removes a background color from an image by lowering
// the alpha channel of pixels close to that color.
//
// The new alpha value of a pixel is
//
//	min(alpha, clamp(d · 255 / tolerance, 0, 255))
//
// where d is the Euclidean distance between the pixel color and the
// target color in RGB space.  Pixels matching the target exactly become
// fully transparent; pixels further than tolerance from the target keep
// their alpha value.
package knockout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/raster"
)

// MaxDistance is the largest possible distance between two RGB colors.
var MaxDistance = math.Sqrt(3 * 255 * 255)

// Config describes the background color to remove.
type Config struct {
	// Target is the background color, as R, G, B.
	Target [3]byte

	// Tolerance is the color distance at which pixels become fully
	// opaque.  This must be positive.
	Tolerance float64
}

// Validate checks that the tolerance is a positive number.
func (cfg *Config) Validate() error {
	if !(cfg.Tolerance > 0) || math.IsInf(cfg.Tolerance, 0) {
		return dtf.Errorf(dtf.InvalidConfig, "knockout.Config",
			"tolerance %g is not a positive number", cfg.Tolerance)
	}
	return nil
}

func (cfg *Config) String() string {
	return fmt.Sprintf("#%02x%02x%02x±%g", cfg.Target[0], cfg.Target[1], cfg.Target[2], cfg.Tolerance)
}

// ParseColor parses a color given as "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseColor(s string) ([3]byte, error) {
	var res [3]byte
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		for i := range 3 {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return res, badColor(s)
			}
			res[i] = byte(v * 17)
		}
	case 6:
		for i := range 3 {
			v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
			if err != nil {
				return res, badColor(s)
			}
			res[i] = byte(v)
		}
	default:
		return res, badColor(s)
	}
	return res, nil
}

func badColor(s string) error {
	return dtf.Errorf(dtf.InvalidConfig, "knockout.ParseColor", "malformed color %q", s)
}

// Alpha computes the new alpha channel for an RGB or RGBA buffer.
// RGB buffers are treated as fully opaque.  The buffer is not modified.
func Alpha(buf *raster.Buffer, cfg *Config) (*raster.Channel, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := buf.Format.Channels()
	if buf.Format != raster.RGB && buf.Format != raster.RGBA {
		return nil, dtf.Errorf(dtf.InvalidFormat, "knockout.Alpha", "need RGB or RGBA, got %s", buf.Format)
	}

	out := raster.NewChannel(buf.Width, buf.Height)
	k := newKnockout(cfg)
	for i := range out.Pix {
		p := buf.Pix[i*n : i*n+n]
		orig := byte(255)
		if n == 4 {
			orig = p[3]
		}
		out.Pix[i] = k.alpha(p[0], p[1], p[2], orig)
	}
	return out, nil
}

// Apply replaces the alpha values of an RGBA buffer in place.
func Apply(buf *raster.Buffer, cfg *Config) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if buf.Format != raster.RGBA {
		return dtf.Errorf(dtf.InvalidFormat, "knockout.Apply", "need RGBA, got %s", buf.Format)
	}

	k := newKnockout(cfg)
	for i := 0; i < len(buf.Pix); i += 4 {
		p := buf.Pix[i : i+4]
		p[3] = k.alpha(p[0], p[1], p[2], p[3])
	}
	return nil
}

type knockout struct {
	target [3]float64
	factor float64
}

func newKnockout(cfg *Config) *knockout {
	return &knockout{
		target: [3]float64{float64(cfg.Target[0]), float64(cfg.Target[1]), float64(cfg.Target[2])},
		factor: 255 / cfg.Tolerance,
	}
}

func (k *knockout) alpha(r, g, b, orig byte) byte {
	dr := float64(r) - k.target[0]
	dg := float64(g) - k.target[1]
	db := float64(b) - k.target[2]
	d := math.Sqrt(dr*dr + dg*dg + db*db)
	if d == 0 {
		return 0
	}

	cand := d * k.factor
	if cand >= 255 {
		return orig
	}
	return min(orig, byte(cand))
}
