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

package raster

import (
	"strconv"

	"seehuhn.de/go/dtf"
)

// ToGray reduces a buffer to a single channel.
//
// Gray buffers are copied.  RGB and RGBA buffers use the luma weights
// 0.299, 0.587 and 0.114; alpha is ignored.  CMYK buffers are first
// converted to RGB.
func ToGray(b *Buffer) (*Channel, error) {
	if err := b.Validate(); err != nil {
		return nil, withOp(err, "ToGray")
	}

	n := b.Width * b.Height
	out := NewChannel(b.Width, b.Height)
	switch b.Format {
	case Gray:
		copy(out.Pix, b.Pix)
	case RGB, RGBA:
		step := b.Format.Channels()
		for i := range n {
			p := b.Pix[i*step : i*step+3]
			out.Pix[i] = luma(p[0], p[1], p[2])
		}
	case CMYK:
		for i := range n {
			p := b.Pix[i*4 : i*4+4]
			r, g, bl := cmykToRGB(p[0], p[1], p[2], p[3])
			out.Pix[i] = luma(r, g, bl)
		}
	}
	return out, nil
}

// luma computes (299 R + 587 G + 114 B) / 1000, rounded.
func luma(r, g, b byte) byte {
	return byte((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

// SplitCMYK separates an RGB or RGBA buffer into cyan, magenta, yellow and
// black ink channels.  Alpha is ignored.
//
// With all values scaled to [0, 1], the conversion is K = 1 - max(R, G, B)
// and C = (1 - R - K) / (1 - K), and similarly for M and Y.
func SplitCMYK(b *Buffer) (c, m, y, k *Channel, err error) {
	if err := b.Validate(); err != nil {
		return nil, nil, nil, nil, withOp(err, "SplitCMYK")
	}
	if b.Format != RGB && b.Format != RGBA {
		return nil, nil, nil, nil, dtf.Errorf(dtf.InvalidFormat, "SplitCMYK",
			"need 3 color samples per pixel, got %s", b.Format)
	}

	w, h := b.Width, b.Height
	c, m, y, k = NewChannel(w, h), NewChannel(w, h), NewChannel(w, h), NewChannel(w, h)
	step := b.Format.Channels()
	for i := range w * h {
		p := b.Pix[i*step : i*step+3]
		c.Pix[i], m.Pix[i], y.Pix[i], k.Pix[i] = rgbToCMYK(p[0], p[1], p[2])
	}
	return c, m, y, k, nil
}

// MergeCMYK combines four ink channels into an RGB buffer which can be
// shown on a screen.  This is the inverse of [SplitCMYK], up to rounding.
func MergeCMYK(c, m, y, k *Channel) (*Buffer, error) {
	if err := checkMerge("MergeCMYK", c, m, y, k); err != nil {
		return nil, err
	}

	out := NewBuffer(c.Width, c.Height, RGB)
	for i := range c.Pix {
		p := out.Pix[i*3 : i*3+3]
		p[0], p[1], p[2] = cmykToRGB(c.Pix[i], m.Pix[i], y.Pix[i], k.Pix[i])
	}
	return out, nil
}

// ToCMYKBuffer combines four ink channels into an interleaved CMYK buffer.
func ToCMYKBuffer(c, m, y, k *Channel) (*Buffer, error) {
	if err := checkMerge("ToCMYKBuffer", c, m, y, k); err != nil {
		return nil, err
	}

	out := NewBuffer(c.Width, c.Height, CMYK)
	for i := range c.Pix {
		p := out.Pix[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = c.Pix[i], m.Pix[i], y.Pix[i], k.Pix[i]
	}
	return out, nil
}

// SplitRGBA separates a buffer into red, green, blue and alpha channels.
// RGB buffers give a fully opaque alpha channel.
func SplitRGBA(b *Buffer) (r, g, bl, a *Channel, err error) {
	if err := b.Validate(); err != nil {
		return nil, nil, nil, nil, withOp(err, "SplitRGBA")
	}
	if b.Format != RGB && b.Format != RGBA {
		return nil, nil, nil, nil, dtf.Errorf(dtf.InvalidFormat, "SplitRGBA",
			"need RGB or RGBA samples, got %s", b.Format)
	}

	w, h := b.Width, b.Height
	r, g, bl, a = NewChannel(w, h), NewChannel(w, h), NewChannel(w, h), NewChannel(w, h)
	if b.Format == RGB {
		for i := range w * h {
			p := b.Pix[i*3 : i*3+3]
			r.Pix[i], g.Pix[i], bl.Pix[i], a.Pix[i] = p[0], p[1], p[2], 255
		}
		return r, g, bl, a, nil
	}
	for i := range w * h {
		p := b.Pix[i*4 : i*4+4]
		r.Pix[i], g.Pix[i], bl.Pix[i], a.Pix[i] = p[0], p[1], p[2], p[3]
	}
	return r, g, bl, a, nil
}

// MergeRGBA combines four channels into an RGBA buffer.
func MergeRGBA(r, g, b, a *Channel) (*Buffer, error) {
	if err := checkMerge("MergeRGBA", r, g, b, a); err != nil {
		return nil, err
	}

	out := NewBuffer(r.Width, r.Height, RGBA)
	for i := range r.Pix {
		p := out.Pix[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = r.Pix[i], g.Pix[i], b.Pix[i], a.Pix[i]
	}
	return out, nil
}

// ToRGBA returns b converted to RGBA.  RGBA buffers are returned unchanged.
func ToRGBA(b *Buffer) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, withOp(err, "ToRGBA")
	}

	n := b.Width * b.Height
	switch b.Format {
	case RGBA:
		return b, nil
	case RGB:
		out := NewBuffer(b.Width, b.Height, RGBA)
		for i := range n {
			copy(out.Pix[i*4:i*4+3], b.Pix[i*3:i*3+3])
			out.Pix[i*4+3] = 255
		}
		return out, nil
	case Gray:
		out := NewBuffer(b.Width, b.Height, RGBA)
		for i, v := range b.Pix {
			out.Pix[i*4], out.Pix[i*4+1], out.Pix[i*4+2], out.Pix[i*4+3] = v, v, v, 255
		}
		return out, nil
	default: // CMYK
		out := NewBuffer(b.Width, b.Height, RGBA)
		for i := range n {
			p := b.Pix[i*4 : i*4+4]
			q := out.Pix[i*4 : i*4+4]
			q[0], q[1], q[2] = cmykToRGB(p[0], p[1], p[2], p[3])
			q[3] = 255
		}
		return out, nil
	}
}

func rgbToCMYK(r, g, b byte) (c, m, y, k byte) {
	mx := max(r, g, b)
	if mx == 0 {
		return 0, 0, 0, 255
	}
	// With K = 1 - max, the term 1 - K equals max/255.
	d := uint32(mx)
	c = byte((255*(d-uint32(r)) + d/2) / d)
	m = byte((255*(d-uint32(g)) + d/2) / d)
	y = byte((255*(d-uint32(b)) + d/2) / d)
	return c, m, y, 255 - mx
}

func cmykToRGB(c, m, y, k byte) (r, g, b byte) {
	w := 255 - uint32(k)
	r = byte(((255-uint32(c))*w + 127) / 255)
	g = byte(((255-uint32(m))*w + 127) / 255)
	b = byte(((255-uint32(y))*w + 127) / 255)
	return r, g, b
}

func checkMerge(op string, channels ...*Channel) error {
	for _, ch := range channels {
		if err := ch.Validate(); err != nil {
			return withOp(err, op)
		}
	}
	if !SameSize(channels...) {
		return dtf.Errorf(dtf.DimensionMismatch, op, "channel sizes %s", sizes(channels))
	}
	return nil
}

func sizes(channels []*Channel) string {
	s := ""
	for i, ch := range channels {
		if i > 0 {
			s += ", "
		}
		s += strconv.Itoa(ch.Width) + "x" + strconv.Itoa(ch.Height)
	}
	return s
}

// withOp fills in the operation name of a [*dtf.Error].
func withOp(err error, op string) error {
	if e, ok := err.(*dtf.Error); ok && e.Op == "" {
		e2 := *e
		e2.Op = op
		return &e2
	}
	return err
}
