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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/raster"
	"seehuhn.de/go/dtf/screen"
)

func solid(w, h int, format raster.Format, px ...byte) *raster.Buffer {
	buf := raster.NewBuffer(w, h, format)
	for i := 0; i < len(buf.Pix); i += len(px) {
		copy(buf.Pix[i:], px)
	}
	return buf
}

func TestSeparateGray(t *testing.T) {
	buf := solid(4, 4, raster.RGB, 128, 128, 128)
	opts := &Options{LPI: 45, Angle: 45, Shape: screen.Round}

	a, err := Separate(buf, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Separate(buf, opts)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(a, b); d != "" {
		t.Errorf("repeated runs differ (-first +second):\n%s", d)
	}
	if a.Format != raster.RGB || a.Width != 4 || a.Height != 4 {
		t.Errorf("got %dx%d %s buffer", a.Width, a.Height, a.Format)
	}
	for i, v := range a.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("sample %d is %d", i, v)
		}
	}
}

func TestSeparateInks(t *testing.T) {
	buf := raster.NewBuffer(9, 7, raster.RGBA)
	for i := range buf.Pix {
		buf.Pix[i] = byte(i * 37)
	}
	opts := &Options{LPI: 60, Shape: screen.Line, CMYKOutput: true}
	got, err := Separate(buf, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got.Format != raster.CMYK {
		t.Fatalf("got %s output, want CMYK", got.Format)
	}

	c, m, y, k, err := raster.SplitCMYK(buf)
	if err != nil {
		t.Fatal(err)
	}
	for i, ink := range []*raster.Channel{c, m, y, k} {
		cfg := screen.Config{Frequency: 60, Angle: DefaultAngles[i], Shape: screen.Line}
		want, err := screen.Screen(ink, cfg)
		if err != nil {
			t.Fatal(err)
		}
		for j, v := range want.Pix {
			if got.Pix[4*j+i] != v {
				t.Fatalf("%s ink differs at sample %d", InkNames[i], j)
			}
		}
	}
}

func TestKnockoutBackground(t *testing.T) {
	buf := solid(2, 2, raster.RGBA, 12, 34, 56, 255)
	opts := &Options{Mode: KnockoutMode, LPI: 45, Angle: 45, BgColor: "#0c2238", Tolerance: 50}

	matte, err := Matte(buf, opts)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{0, 0, 0, 0}, matte.Pix); d != "" {
		t.Errorf("alpha before screening (-want +got):\n%s", d)
	}

	out, err := Process(buf, opts)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(solid(2, 2, raster.RGBA, 12, 34, 56, 0), out); d != "" {
		t.Errorf("output (-want +got):\n%s", d)
	}
}

func TestMatteWithoutBackground(t *testing.T) {
	buf := raster.NewBuffer(3, 2, raster.RGBA)
	for i := range buf.Pix {
		buf.Pix[i] = byte(40 * i)
	}
	matte, err := Matte(buf, &Options{Mode: KnockoutMode, LPI: 45})
	if err != nil {
		t.Fatal(err)
	}
	_, _, _, want, err := raster.SplitRGBA(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, matte); d != "" {
		t.Errorf("alpha before screening (-want +got):\n%s", d)
	}
}

func TestKnockoutBinaryAlpha(t *testing.T) {
	buf := raster.NewBuffer(16, 12, raster.RGBA)
	for y := range 12 {
		for x := range 16 {
			p := buf.Pix[(y*16+x)*4:]
			p[0], p[1], p[2], p[3] = byte(x), byte(y), 200, byte(x*17)
		}
	}
	orig := buf.Clone()

	out, err := Knockout(buf, &Options{Mode: KnockoutMode, LPI: 45, Angle: 30})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(orig, buf); d != "" {
		t.Errorf("input was modified (-want +got):\n%s", d)
	}
	for i := 0; i < len(out.Pix); i += 4 {
		if d := cmp.Diff(orig.Pix[i:i+3], out.Pix[i:i+3]); d != "" {
			t.Fatalf("color of pixel %d changed (-want +got):\n%s", i/4, d)
		}
		if a := out.Pix[i+3]; a != 0 && a != 255 {
			t.Fatalf("alpha of pixel %d is %d", i/4, a)
		}
	}
}

func TestKnockoutRGB(t *testing.T) {
	buf := solid(5, 5, raster.RGB, 255, 255, 255)
	out, err := Process(buf, &Options{Mode: KnockoutMode, LPI: 45, BgColor: "fff", Tolerance: 10})
	if err != nil {
		t.Fatal(err)
	}
	if out.Format != raster.RGBA {
		t.Fatalf("got %s, want RGBA", out.Format)
	}
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0 {
			t.Fatalf("alpha of pixel %d is %d, want 0", i/4, out.Pix[i])
		}
	}
}

func TestKnockoutOpaqueEdges(t *testing.T) {
	buf := solid(60, 40, raster.RGBA, 10, 20, 30, 255)
	opts := &Options{Mode: KnockoutMode, LPI: 45, Angle: 45, Shape: screen.Line}
	out, err := Knockout(buf, opts)
	if err != nil {
		t.Fatal(err)
	}
	transparent := 0
	for i := 3; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 255 {
			transparent++
		}
	}
	if transparent > 0 {
		t.Errorf("%d of %d opaque pixels became transparent", transparent, len(out.Pix)/4)
	}
}

func TestKnockoutBadColor(t *testing.T) {
	// Options are validated by the exported entry points, so call the
	// worker directly to see that it does not ignore a broken color.
	buf := solid(4, 4, raster.RGB, 1, 2, 3)
	opts := &Options{Mode: KnockoutMode, LPI: 45, BgColor: "not a color", Tolerance: 10}
	out, err := doKnockout(buf, opts)
	if !errors.Is(err, dtf.ErrInvalidConfig) {
		t.Errorf("got %v, want %v", err, dtf.ErrInvalidConfig)
	}
	if out != nil {
		t.Error("partial output returned")
	}
}

func TestSeparateSolidEdges(t *testing.T) {
	buf := solid(50, 30, raster.RGB, 0, 0, 0)
	out, err := Separate(buf, &Options{LPI: 45, Shape: screen.Line})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(solid(50, 30, raster.RGB, 0, 0, 0), out); d != "" {
		t.Errorf("black input has gaps (-want +got):\n%s", d)
	}
}

func TestSoft(t *testing.T) {
	buf := solid(1, 1, raster.RGB, 250, 255, 255)
	out, err := Soft(buf, &Options{BgColor: "#ffffff", Tolerance: 10})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{250, 255, 255, 127}, out.Pix); d != "" {
		t.Errorf("soft matte (-want +got):\n%s", d)
	}

	_, err = Soft(buf, &Options{})
	if !errors.Is(err, dtf.ErrInvalidConfig) {
		t.Errorf("Soft without background: got %v", err)
	}
}

func TestErrors(t *testing.T) {
	rgb := solid(4, 4, raster.RGB, 1, 2, 3)
	tests := []struct {
		name string
		buf  *raster.Buffer
		opts *Options
		want error
	}{
		{"zero lpi", rgb, &Options{}, dtf.ErrInvalidConfig},
		{"negative lpi", rgb, &Options{LPI: -3}, dtf.ErrInvalidConfig},
		{"shape", rgb, &Options{LPI: 45, Shape: "star"}, dtf.ErrUnsupportedShape},
		{"spot", rgb, &Options{LPI: 45, Shape: screen.Spot, Spot: "Star"}, dtf.ErrUnsupportedShape},
		{"angles", rgb, &Options{LPI: 45, Angles: []float64{1, 2, 3}}, dtf.ErrInvalidConfig},
		{"mode", rgb, &Options{LPI: 45, Mode: "sepia"}, dtf.ErrInvalidConfig},
		{"color", rgb, &Options{LPI: 45, Mode: KnockoutMode, BgColor: "#12345"}, dtf.ErrInvalidConfig},
		{"tolerance", rgb, &Options{LPI: 45, Mode: KnockoutMode, BgColor: "#123456"}, dtf.ErrInvalidConfig},
		{"gray separation", solid(2, 2, raster.Gray, 9), &Options{LPI: 45}, dtf.ErrInvalidFormat},
		{"corrupt", &raster.Buffer{Width: 3, Height: 3, Format: raster.RGB}, &Options{LPI: 45}, dtf.ErrInvalidFormat},
		{"corrupt knockout", &raster.Buffer{Width: 3, Height: 3, Format: raster.RGBA}, &Options{LPI: 45, Mode: KnockoutMode}, dtf.ErrInvalidFormat},
	}
	for _, test := range tests {
		out, err := Process(test.buf, test.opts)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.want)
		}
		if out != nil {
			t.Errorf("%s: partial output returned", test.name)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	want := "separation round screen, 45 lpi, angles C15 M75 Y90 K45"
	if got := opts.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
