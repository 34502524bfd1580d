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

package screen

import (
	"math"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/raster"
)

// Grid is a threshold map for a periodic screen.
// A sample is inked if it is strictly greater than the grid value at the
// same position.
type Grid struct {
	Width, Height int
	Pix           []uint8
}

// spotResolution is the number of samples per cell side used to tabulate
// spot functions.
const spotResolution = 64

// NewGrid computes the threshold grid of the given size for a periodic
// screen.  The grid is not rotated.  Diffusion screens have no threshold
// grid.
func NewGrid(width, height int, cfg *Config) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}

	scale := cfg.scale()
	switch cfg.shape() {
	case Line:
		for y := range height {
			t := level(math.Sin(float64(y) / scale * math.Pi))
			row := g.Pix[y*width : (y+1)*width]
			for x := range row {
				row[x] = t
			}
		}

	case Round:
		sx := make([]float64, width)
		for x := range sx {
			sx[x] = math.Sin(float64(x) / scale * math.Pi)
		}
		for y := range height {
			sy := math.Sin(float64(y) / scale * math.Pi)
			row := g.Pix[y*width : (y+1)*width]
			for x := range row {
				row[x] = level(sx[x] * sy)
			}
		}

	case Spot:
		f, err := cfg.spotFunc()
		if err != nil {
			return nil, err
		}
		vals, err := f.Sample(spotResolution)
		if err != nil {
			return nil, err
		}
		lut := make([]uint8, len(vals))
		for i, v := range vals {
			// The spot function is largest where the cell is inked first.
			lut[i] = level(-v)
		}
		cell := 2 * scale
		ix := make([]int, width)
		for x := range ix {
			ix[x] = cellIndex(float64(x), cell)
		}
		for y := range height {
			iy := cellIndex(float64(y), cell)
			row := g.Pix[y*width : (y+1)*width]
			for x := range row {
				row[x] = lut[iy*spotResolution+ix[x]]
			}
		}

	default:
		return nil, dtf.Errorf(dtf.UnsupportedShape, "screen.NewGrid", "%s screens have no threshold grid", cfg.shape())
	}
	return g, nil
}

// Threshold returns a binary channel which is 255 where the sample in ch
// exceeds the grid value, and 0 elsewhere.
func (g *Grid) Threshold(ch *raster.Channel) (*raster.Channel, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	if ch.Width != g.Width || ch.Height != g.Height {
		return nil, dtf.Errorf(dtf.DimensionMismatch, "screen.Threshold",
			"channel is %dx%d, grid is %dx%d", ch.Width, ch.Height, g.Width, g.Height)
	}
	out := raster.NewChannel(ch.Width, ch.Height)
	for i, v := range ch.Pix {
		if v > g.Pix[i] {
			out.Pix[i] = 255
		}
	}
	return out, nil
}

// level maps a pattern value from [-1, 1] to a threshold in [0, 255].
func level(p float64) uint8 {
	t := (p + 1) / 2 * 255
	if t <= 0 {
		return 0
	} else if t >= 255 {
		return 255
	}
	return uint8(t)
}

// cellIndex returns the table index for position pos within a cell of the
// given size.  Cell centres fall between the table entries
// spotResolution/2-1 and spotResolution/2.
func cellIndex(pos, cell float64) int {
	frac := pos/cell - math.Floor(pos/cell)
	// Shift by half a cell, so that the cell centre is at frac = 0.5.
	frac += 0.5
	if frac >= 1 {
		frac -= 1
	}
	i := int(frac * spotResolution)
	return min(max(i, 0), spotResolution-1)
}
