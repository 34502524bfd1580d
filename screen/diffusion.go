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
	"image"
	"image/color"
	"math"

	"github.com/makeworld-the-better-one/dither/v2"

	"seehuhn.de/go/dtf/raster"
)

var blackWhite = []color.Color{color.Gray{Y: 0}, color.Gray{Y: 255}}

// diffuse applies a contrast stretch and then Floyd-Steinberg error
// diffusion to ch.
func diffuse(ch *raster.Channel, cutoff float64) *raster.Channel {
	lut := stretch(ch.Pix, cutoff)

	// The ditherer works in linear light and converts its input from sRGB.
	// Encoding the samples with the sRGB curve makes the error diffusion
	// operate on the sample values themselves.
	img := image.NewGray16(image.Rect(0, 0, ch.Width, ch.Height))
	var enc [256]uint16
	for i := range enc {
		enc[i] = srgbEncode(float64(i) / 255)
	}
	for i, v := range ch.Pix {
		e := enc[lut[v]]
		img.Pix[2*i] = uint8(e >> 8)
		img.Pix[2*i+1] = uint8(e)
	}

	d := dither.NewDitherer(blackWhite)
	d.Matrix = dither.FloydSteinberg
	res := d.DitherPaletted(img)

	out := raster.NewChannel(ch.Width, ch.Height)
	b := res.Bounds()
	for y := range ch.Height {
		for x := range ch.Width {
			if color.GrayModel.Convert(res.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y >= 128 {
				out.Pix[y*ch.Width+x] = 255
			}
		}
	}
	return out
}

// stretch returns a lookup table which maps the sample range remaining
// after discarding the given fraction of the darkest and of the lightest
// samples linearly onto 0..255.  If no range remains, the identity table
// is returned.
func stretch(pix []uint8, cutoff float64) *[256]uint8 {
	var hist [256]int
	for _, v := range pix {
		hist[v]++
	}

	cut := int(float64(len(pix)) * cutoff)

	lo := 0
	for n := cut; lo < 256; lo++ {
		if hist[lo] > n {
			break
		}
		n -= hist[lo]
	}
	hi := 255
	for n := cut; hi >= 0; hi-- {
		if hist[hi] > n {
			break
		}
		n -= hist[hi]
	}

	lut := new([256]uint8)
	if hi <= lo {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}
	for i := range lut {
		v := (i - lo) * 255 / (hi - lo)
		lut[i] = uint8(min(max(v, 0), 255))
	}
	return lut
}

// srgbEncode applies the sRGB transfer curve to a linear value in [0, 1]
// and scales the result to 16 bits.
func srgbEncode(l float64) uint16 {
	var v float64
	if l <= 0.0031308 {
		v = 12.92 * l
	} else {
		v = 1.055*math.Pow(l, 1/2.4) - 0.055
	}
	return uint16(math.Round(min(max(v, 0), 1) * 65535))
}
