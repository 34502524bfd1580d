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
	"image"
	"image/color"
)

// FromImage copies a decoded image into a new buffer.
//
// Gray and CMYK images keep their format.  Other images become RGB if they
// are fully opaque, and RGBA (not premultiplied) otherwise.
func FromImage(img image.Image) *Buffer {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()

	switch img := img.(type) {
	case *image.Gray:
		return &Buffer{Width: w, Height: h, Format: Gray, Pix: ChannelFromGray(img).Pix}
	case *image.CMYK:
		out := NewBuffer(w, h, CMYK)
		for y := range h {
			i := img.PixOffset(r.Min.X, r.Min.Y+y)
			copy(out.Pix[y*w*4:(y+1)*w*4], img.Pix[i:i+w*4])
		}
		return out
	}

	if isOpaque(img) {
		out := NewBuffer(w, h, RGB)
		for y := range h {
			for x := range w {
				c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
				p := out.Pix[(y*w+x)*3:]
				p[0], p[1], p[2] = c.R, c.G, c.B
			}
		}
		return out
	}

	out := NewBuffer(w, h, RGBA)
	for y := range h {
		for x := range w {
			c := color.NRGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			p := out.Pix[(y*w+x)*4:]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// Image returns a Go image which shares its pixel data with b, where the
// layouts agree.  RGB buffers are copied into an [image.RGBA].
func (b *Buffer) Image() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	switch b.Format {
	case Gray:
		return &image.Gray{Pix: b.Pix, Stride: b.Width, Rect: rect}
	case RGBA:
		return &image.NRGBA{Pix: b.Pix, Stride: 4 * b.Width, Rect: rect}
	case CMYK:
		return &image.CMYK{Pix: b.Pix, Stride: 4 * b.Width, Rect: rect}
	default:
		img := image.NewRGBA(rect)
		for i := range b.Width * b.Height {
			copy(img.Pix[i*4:i*4+3], b.Pix[i*3:i*3+3])
			img.Pix[i*4+3] = 255
		}
		return img
	}
}

// Gray returns an [image.Gray] which shares its pixel data with ch.
func (ch *Channel) Gray() *image.Gray {
	return &image.Gray{
		Pix:    ch.Pix,
		Stride: ch.Width,
		Rect:   image.Rect(0, 0, ch.Width, ch.Height),
	}
}

// ChannelFromGray copies a gray image into a new channel.
func ChannelFromGray(img *image.Gray) *Channel {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	if img.Stride == w && r.Min == (image.Point{}) {
		return &Channel{Width: w, Height: h, Pix: append([]byte(nil), img.Pix[:w*h]...)}
	}
	out := NewChannel(w, h)
	for y := range h {
		i := img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*w:(y+1)*w], img.Pix[i:i+w])
	}
	return out
}
