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

package imageio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/raster"
)

func testBuffer(w, h int, format raster.Format) *raster.Buffer {
	buf := raster.NewBuffer(w, h, format)
	for i := range buf.Pix {
		buf.Pix[i] = byte(i*29 + 7)
	}
	if format == raster.RGBA {
		buf.Pix[3] = 0 // make sure the image is not opaque
	}
	return buf
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		format raster.Format
		out    Format
		name   string
	}{
		{raster.RGB, PNG, "png"},
		{raster.RGBA, PNG, "png"},
		{raster.Gray, PNG, "png"},
		{raster.RGB, TIFF, "tiff"},
		{raster.Gray, TIFF, "tiff"},
	}
	for _, test := range tests {
		buf := testBuffer(5, 3, test.format)
		if test.format == raster.RGBA {
			// PNG stores non-premultiplied samples, but colors of fully
			// transparent pixels are not preserved.
			buf.Pix[0], buf.Pix[1], buf.Pix[2] = 0, 0, 0
		}

		var data bytes.Buffer
		if err := Encode(&data, buf, test.out); err != nil {
			t.Fatal(err)
		}
		got, name, err := Decode(&data)
		if err != nil {
			t.Fatal(err)
		}
		if name != test.name {
			t.Errorf("decoded format %q, want %q", name, test.name)
		}
		if d := cmp.Diff(buf, got); d != "" {
			t.Errorf("%s %s (-want +got):\n%s", test.format, test.out, d)
		}
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(strings.NewReader("not an image"))
	if err == nil {
		t.Error("no error for invalid input")
	}
}

func TestEncodeErrors(t *testing.T) {
	var data bytes.Buffer
	err := Encode(&data, testBuffer(2, 2, raster.RGB), "gif")
	if !errors.Is(err, dtf.ErrInvalidConfig) {
		t.Errorf("unknown format: got %v", err)
	}
	err = Encode(&data, &raster.Buffer{Width: 2, Height: 2, Format: raster.RGB}, PNG)
	if !errors.Is(err, dtf.ErrInvalidFormat) {
		t.Errorf("corrupt buffer: got %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"out.png":      PNG,
		"out.TIF":      TIFF,
		"a/b/c.tiff":   TIFF,
		"-":            PNG,
		"no-extension": PNG,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	buf := testBuffer(4, 4, raster.RGB)
	for _, name := range []string{"x.png", "x.tif"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, buf); err != nil {
			t.Fatal(err)
		}
		got, _, err := ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(buf, got); d != "" {
			t.Errorf("%s (-want +got):\n%s", name, d)
		}
	}

	_, _, err := ReadFile(filepath.Join(dir, "missing.png"))
	if err == nil {
		t.Error("no error for missing file")
	}
}

func TestResize(t *testing.T) {
	buf := testBuffer(40, 30, raster.RGB)
	out, err := Resize(buf, 20)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 20 || out.Height != 15 || out.Format != raster.RGB {
		t.Errorf("got %dx%d %s", out.Width, out.Height, out.Format)
	}

	same, err := Resize(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if same != buf {
		t.Error("zero width did not return the input")
	}

	gray, err := Resize(testBuffer(10, 10, raster.Gray), 25)
	if err != nil {
		t.Fatal(err)
	}
	if gray.Width != 25 || gray.Height != 25 || gray.Format != raster.Gray {
		t.Errorf("got %dx%d %s", gray.Width, gray.Height, gray.Format)
	}
}
