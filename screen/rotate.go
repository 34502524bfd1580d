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
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/dtf/raster"
)

// sinCosDeg returns the sine and cosine of an angle given in degrees.
// Multiples of 90 degrees give exact results.
func sinCosDeg(angle float64) (float64, float64) {
	switch angle {
	case 0:
		return 0, 1
	case 90, -270:
		return 1, 0
	case 180, -180:
		return 0, -1
	case 270, -90:
		return -1, 0
	}
	return math.Sincos(angle * math.Pi / 180)
}

// rotation returns the matrix which rotates counterclockwise (as displayed,
// with the y-axis pointing down) by angle degrees.
func rotation(angle float64) matrix.Matrix {
	s, c := sinCosDeg(angle)
	return matrix.Matrix{c, -s, s, c, 0, 0}
}

// canvasSize returns the size of the smallest canvas which contains a
// w×h image rotated by angle degrees.
func canvasSize(w, h int, angle float64) (int, int) {
	s, c := sinCosDeg(angle)
	s, c = math.Abs(s), math.Abs(c)
	const eps = 1e-6
	fw, fh := float64(w), float64(h)
	W := int(math.Ceil(fw*c + fh*s - eps))
	H := int(math.Ceil(fw*s + fh*c - eps))
	return W, H
}

// edgePad is the number of pixels by which the source is extended before
// rotating.  Rounding in the two nearest-neighbour passes and in the final
// crop each moves a sample by at most half a pixel diagonal.
const edgePad = 2

// rotate rotates ch by angle degrees around its centre, onto a canvas
// large enough to hold the full result.  The edge samples of ch are
// replicated for edgePad pixels, canvas pixels further out are 0.
// Nearest-neighbour sampling is used, so that no new sample values are
// introduced.
func rotate(ch *raster.Channel, angle float64) *raster.Channel {
	w, h := ch.Width, ch.Height
	W, H := canvasSize(w, h, angle)

	M := matrix.Translate(-float64(w)/2, -float64(h)/2).
		Mul(rotation(angle)).
		Mul(matrix.Translate(float64(W)/2, float64(H)/2))

	src := padEdges(ch, edgePad)
	dst := image.NewGray(image.Rect(0, 0, W, H))
	s2d := f64.Aff3{M[0], M[2], M[4], M[1], M[3], M[5]}
	draw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)

	return &raster.Channel{Width: W, Height: H, Pix: dst.Pix}
}

// padEdges returns a copy of ch with bounds extended by n pixels on every
// side.  The new pixels repeat the nearest edge sample.  Pixel coordinates
// inside the original rectangle are unchanged.
func padEdges(ch *raster.Channel, n int) *image.Gray {
	w, h := ch.Width, ch.Height
	img := image.NewGray(image.Rect(-n, -n, w+n, h+n))
	if w == 0 || h == 0 {
		return img
	}
	for y := -n; y < h+n; y++ {
		row := ch.Pix[min(max(y, 0), h-1)*w:][:w]
		i := img.PixOffset(-n, y)
		for x := -n; x < w+n; x++ {
			img.Pix[i] = row[min(max(x, 0), w-1)]
			i++
		}
	}
	return img
}

// crop cuts a w×h rectangle out of the centre of ch.
func crop(ch *raster.Channel, w, h int) *raster.Channel {
	x0 := (ch.Width - w) / 2
	y0 := (ch.Height - h) / 2
	out := raster.NewChannel(w, h)
	for y := range h {
		i := (y0+y)*ch.Width + x0
		copy(out.Pix[y*w:(y+1)*w], ch.Pix[i:i+w])
	}
	return out
}

