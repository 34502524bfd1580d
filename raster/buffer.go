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

// Package raster implements the pixel buffers used by the screening engine
// and conversions between RGB, RGBA, CMYK and single-channel images.
//
// All samples are 8-bit values.  Multi-channel buffers store their samples
// interleaved and row by row, without padding.
package raster

import (
	"seehuhn.de/go/dtf"
)

// Format describes the layout of the samples of one pixel.
type Format int

// These are the supported pixel formats.
const (
	Gray Format = iota + 1
	RGB
	RGBA
	CMYK
)

// Channels returns the number of samples per pixel,
// or 0 for an unknown format.
func (f Format) Channels() int {
	switch f {
	case Gray:
		return 1
	case RGB:
		return 3
	case RGBA, CMYK:
		return 4
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case Gray:
		return "Gray"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case CMYK:
		return "CMYK"
	default:
		return "unknown"
	}
}

// Buffer is a rectangular grid of pixels.
type Buffer struct {
	Width, Height int
	Format        Format

	// Pix holds the interleaved samples, row by row.
	// The sample for channel c of pixel (x, y) is at
	// Pix[(y*Width+x)*Format.Channels()+c].
	Pix []byte
}

// NewBuffer allocates a zero-filled buffer.
func NewBuffer(width, height int, format Format) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]byte, width*height*format.Channels()),
	}
}

// Validate checks that the buffer has a known format and that the size of
// Pix matches the dimensions.
func (b *Buffer) Validate() error {
	if b == nil {
		return dtf.Errorf(dtf.InvalidFormat, "", "missing pixel buffer")
	}
	n := b.Format.Channels()
	if n == 0 {
		return dtf.Errorf(dtf.InvalidFormat, "", "unknown pixel format %d", int(b.Format))
	}
	if b.Width < 0 || b.Height < 0 {
		return dtf.Errorf(dtf.InvalidFormat, "", "invalid size %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*n {
		return dtf.Errorf(dtf.InvalidFormat, "",
			"%dx%d %s buffer needs %d bytes, got %d",
			b.Width, b.Height, b.Format, b.Width*b.Height*n, len(b.Pix))
	}
	return nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Pix = append([]byte(nil), b.Pix...)
	return &c
}

// Plane returns a copy of channel c of the buffer, for 0 <= c <
// b.Format.Channels().
func (b *Buffer) Plane(c int) (*Channel, error) {
	if err := b.Validate(); err != nil {
		return nil, withOp(err, "Plane")
	}
	n := b.Format.Channels()
	if c < 0 || c >= n {
		return nil, dtf.Errorf(dtf.InvalidFormat, "Plane", "%s buffer has no channel %d", b.Format, c)
	}
	out := NewChannel(b.Width, b.Height)
	for i := range out.Pix {
		out.Pix[i] = b.Pix[i*n+c]
	}
	return out, nil
}

// Channel is a single-sample-per-pixel image.
type Channel struct {
	Width, Height int

	// Pix holds one sample per pixel, row by row.
	Pix []byte
}

// NewChannel allocates a zero-filled channel.
func NewChannel(width, height int) *Channel {
	return &Channel{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height),
	}
}

// Validate checks that the size of Pix matches the dimensions.
func (ch *Channel) Validate() error {
	if ch == nil {
		return dtf.Errorf(dtf.InvalidFormat, "", "missing channel")
	}
	if ch.Width < 0 || ch.Height < 0 || len(ch.Pix) != ch.Width*ch.Height {
		return dtf.Errorf(dtf.InvalidFormat, "",
			"%dx%d channel with %d samples", ch.Width, ch.Height, len(ch.Pix))
	}
	return nil
}

// SameSize reports whether all channels have the same dimensions.
func SameSize(channels ...*Channel) bool {
	if len(channels) == 0 {
		return true
	}
	for _, ch := range channels[1:] {
		if ch.Width != channels[0].Width || ch.Height != channels[0].Height {
			return false
		}
	}
	return true
}
