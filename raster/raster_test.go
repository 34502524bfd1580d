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
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/dtf"
)

func TestSplitCMYKKnownColors(t *testing.T) {
	tests := []struct {
		rgb  [3]byte
		cmyk [4]byte
	}{
		{[3]byte{255, 255, 255}, [4]byte{0, 0, 0, 0}},
		{[3]byte{0, 0, 0}, [4]byte{0, 0, 0, 255}},
		{[3]byte{255, 0, 0}, [4]byte{0, 255, 255, 0}},
		{[3]byte{0, 255, 255}, [4]byte{255, 0, 0, 0}},
		{[3]byte{128, 128, 128}, [4]byte{0, 0, 0, 127}},
		{[3]byte{128, 64, 0}, [4]byte{0, 128, 255, 127}},
	}
	for _, test := range tests {
		b := &Buffer{Width: 1, Height: 1, Format: RGB, Pix: test.rgb[:]}
		c, m, y, k, err := SplitCMYK(b)
		if err != nil {
			t.Fatal(err)
		}
		got := [4]byte{c.Pix[0], m.Pix[0], y.Pix[0], k.Pix[0]}
		if got != test.cmyk {
			t.Errorf("SplitCMYK(%v) = %v, want %v", test.rgb, got, test.cmyk)
		}
	}
}

func TestCMYKRoundTrip(t *testing.T) {
	var pix []byte
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 5 {
				pix = append(pix, byte(r), byte(g), byte(b))
			}
		}
	}
	in := &Buffer{Width: len(pix) / 3, Height: 1, Format: RGB, Pix: pix}

	c, m, y, k, err := SplitCMYK(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := MergeCMYK(c, m, y, k)
	if err != nil {
		t.Fatal(err)
	}

	if out.Format != RGB || out.Width != in.Width || out.Height != in.Height {
		t.Fatalf("got %dx%d %s", out.Width, out.Height, out.Format)
	}
	for i := range in.Pix {
		d := int(out.Pix[i]) - int(in.Pix[i])
		if d < -1 || d > 1 {
			t.Fatalf("sample %d: %d -> %d", i, in.Pix[i], out.Pix[i])
		}
	}
}

func TestSplitCMYKIgnoresAlpha(t *testing.T) {
	rgba := &Buffer{Width: 2, Height: 1, Format: RGBA, Pix: []byte{10, 20, 30, 0, 200, 100, 50, 255}}
	rgb := &Buffer{Width: 2, Height: 1, Format: RGB, Pix: []byte{10, 20, 30, 200, 100, 50}}

	c1, m1, y1, k1, err := SplitCMYK(rgba)
	if err != nil {
		t.Fatal(err)
	}
	c2, m2, y2, k2, err := SplitCMYK(rgb)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]*Channel{c2, m2, y2, k2}, []*Channel{c1, m1, y1, k1}); d != "" {
		t.Error(d)
	}
}

func TestSplitInvalidFormat(t *testing.T) {
	tests := []*Buffer{
		nil,
		{Width: 2, Height: 2, Format: Gray, Pix: make([]byte, 4)},
		{Width: 2, Height: 2, Format: CMYK, Pix: make([]byte, 16)},
		{Width: 2, Height: 2, Format: RGB, Pix: make([]byte, 11)},
		{Width: 1, Height: 1, Format: Format(7), Pix: make([]byte, 7)},
	}
	for i, b := range tests {
		if _, _, _, _, err := SplitCMYK(b); !errors.Is(err, dtf.ErrInvalidFormat) {
			t.Errorf("%d: SplitCMYK error %v, want InvalidFormat", i, err)
		}
	}
	if _, _, _, _, err := SplitRGBA(tests[2]); !errors.Is(err, dtf.ErrInvalidFormat) {
		t.Errorf("SplitRGBA(CMYK) error %v, want InvalidFormat", err)
	}
}

func TestMergeDimensionMismatch(t *testing.T) {
	a := NewChannel(2, 2)
	b := NewChannel(2, 3)

	if _, err := MergeCMYK(a, a, b, a); !errors.Is(err, dtf.ErrDimensionMismatch) {
		t.Errorf("MergeCMYK error %v, want DimensionMismatch", err)
	}
	if _, err := MergeRGBA(a, a, a, b); !errors.Is(err, dtf.ErrDimensionMismatch) {
		t.Errorf("MergeRGBA error %v, want DimensionMismatch", err)
	}
	if _, err := ToCMYKBuffer(b, a, a, a); !errors.Is(err, dtf.ErrDimensionMismatch) {
		t.Errorf("ToCMYKBuffer error %v, want DimensionMismatch", err)
	}

	corrupt := &Channel{Width: 2, Height: 2, Pix: make([]byte, 3)}
	if _, err := MergeRGBA(a, a, a, corrupt); !errors.Is(err, dtf.ErrInvalidFormat) {
		t.Errorf("MergeRGBA error %v, want InvalidFormat", err)
	}
}

func TestRGBARoundTrip(t *testing.T) {
	in := &Buffer{Width: 3, Height: 1, Format: RGBA, Pix: []byte{
		1, 2, 3, 4,
		250, 128, 0, 255,
		9, 8, 7, 0,
	}}
	r, g, b, a, err := SplitRGBA(in)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{4, 255, 0}, a.Pix); d != "" {
		t.Errorf("alpha: %s", d)
	}
	out, err := MergeRGBA(r, g, b, a)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Error(d)
	}
}

func TestSplitRGBAOpaque(t *testing.T) {
	in := &Buffer{Width: 2, Height: 1, Format: RGB, Pix: []byte{1, 2, 3, 4, 5, 6}}
	_, _, _, a, err := SplitRGBA(in)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{255, 255}, a.Pix); d != "" {
		t.Error(d)
	}
}

func TestToGray(t *testing.T) {
	tests := []struct {
		in   *Buffer
		want []byte
	}{
		{
			in:   &Buffer{Width: 2, Height: 1, Format: Gray, Pix: []byte{7, 200}},
			want: []byte{7, 200},
		},
		{
			in:   &Buffer{Width: 4, Height: 1, Format: RGB, Pix: []byte{255, 255, 255, 0, 0, 0, 255, 0, 0, 128, 128, 128}},
			want: []byte{255, 0, 76, 128},
		},
		{
			in:   &Buffer{Width: 1, Height: 1, Format: RGBA, Pix: []byte{0, 255, 0, 0}},
			want: []byte{150},
		},
		{
			in:   &Buffer{Width: 2, Height: 1, Format: CMYK, Pix: []byte{0, 0, 0, 0, 0, 0, 0, 255}},
			want: []byte{255, 0},
		},
	}
	for i, test := range tests {
		ch, err := ToGray(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(test.want, ch.Pix); d != "" {
			t.Errorf("%d: %s", i, d)
		}
	}
}

func TestToRGBA(t *testing.T) {
	in := &Buffer{Width: 1, Height: 1, Format: RGB, Pix: []byte{1, 2, 3}}
	out, err := ToRGBA(in)
	if err != nil {
		t.Fatal(err)
	}
	want := &Buffer{Width: 1, Height: 1, Format: RGBA, Pix: []byte{1, 2, 3, 255}}
	if d := cmp.Diff(want, out); d != "" {
		t.Error(d)
	}

	same, err := ToRGBA(want)
	if err != nil {
		t.Fatal(err)
	}
	if same != want {
		t.Error("RGBA buffer was copied")
	}
}

func TestFromImage(t *testing.T) {
	opaque := image.NewRGBA(image.Rect(0, 0, 2, 1))
	opaque.Set(0, 0, color.RGBA{10, 20, 30, 255})
	opaque.Set(1, 0, color.RGBA{40, 50, 60, 255})
	b := FromImage(opaque)
	want := &Buffer{Width: 2, Height: 1, Format: RGB, Pix: []byte{10, 20, 30, 40, 50, 60}}
	if d := cmp.Diff(want, b); d != "" {
		t.Error(d)
	}

	transparent := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	transparent.SetNRGBA(5, 5, color.NRGBA{10, 20, 30, 40})
	transparent.SetNRGBA(6, 5, color.NRGBA{50, 60, 70, 255})
	b = FromImage(transparent)
	want = &Buffer{Width: 2, Height: 1, Format: RGBA, Pix: []byte{10, 20, 30, 40, 50, 60, 70, 255}}
	if d := cmp.Diff(want, b); d != "" {
		t.Error(d)
	}

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(2, 1, color.Gray{Y: 99})
	b = FromImage(gray.SubImage(image.Rect(1, 1, 3, 2)))
	want = &Buffer{Width: 2, Height: 1, Format: Gray, Pix: []byte{0, 99}}
	if d := cmp.Diff(want, b); d != "" {
		t.Error(d)
	}
}

func TestBufferImage(t *testing.T) {
	b := &Buffer{Width: 1, Height: 2, Format: RGBA, Pix: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	img, ok := b.Image().(*image.NRGBA)
	if !ok {
		t.Fatalf("got %T", b.Image())
	}
	if c := img.NRGBAAt(0, 1); c != (color.NRGBA{5, 6, 7, 8}) {
		t.Errorf("pixel (0,1) = %v", c)
	}

	rgb := &Buffer{Width: 1, Height: 1, Format: RGB, Pix: []byte{9, 8, 7}}
	back := FromImage(rgb.Image())
	if d := cmp.Diff(rgb, back); d != "" {
		t.Error(d)
	}

	ch := &Channel{Width: 2, Height: 1, Pix: []byte{0, 255}}
	if d := cmp.Diff(ch, ChannelFromGray(ch.Gray())); d != "" {
		t.Error(d)
	}
}

func TestPlane(t *testing.T) {
	buf := &Buffer{Width: 2, Height: 1, Format: CMYK, Pix: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	ch, err := buf.Plane(2)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(&Channel{Width: 2, Height: 1, Pix: []byte{3, 7}}, ch); d != "" {
		t.Errorf("plane 2 (-want +got):\n%s", d)
	}
	if _, err := buf.Plane(4); !errors.Is(err, dtf.ErrInvalidFormat) {
		t.Errorf("plane 4: got %v", err)
	}
}
