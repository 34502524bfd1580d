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

// Package imageio reads and writes the image files used by the command
// line tool.
package imageio

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/dtf"
	"seehuhn.de/go/dtf/raster"
)

// Format is an output file format.
type Format string

// These are the supported output formats.
const (
	PNG  Format = "png"
	TIFF Format = "tiff"
)

// FormatFor selects the output format from a file name extension.
// Unknown extensions and "-" select PNG.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return TIFF
	default:
		return PNG
	}
}

// Decode reads an image in any of the supported formats (PNG, JPEG, GIF,
// BMP, TIFF and WebP).  It returns the pixels and the name of the format.
func Decode(r io.Reader) (*raster.Buffer, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return raster.FromImage(img), name, nil
}

// ReadFile decodes the image stored in the named file.
// The name "-" denotes standard input.
func ReadFile(path string) (*raster.Buffer, string, error) {
	if path == "-" {
		return Decode(bufio.NewReader(os.Stdin))
	}
	fd, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer fd.Close()

	buf, name, err := Decode(bufio.NewReader(fd))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return buf, name, nil
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *raster.Buffer, format Format) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	img := buf.Image()
	switch format {
	case PNG:
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return dtf.Errorf(dtf.InvalidConfig, "imageio.Encode", "unknown output format %q", format)
	}
}

// WriteFile encodes buf into the named file, choosing the format by the
// file name extension.  If the encoder fails, the file is removed.
func WriteFile(path string, buf *raster.Buffer) (err error) {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err2 := fd.Close()
		if err == nil {
			err = err2
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(fd)
	err = Encode(w, buf, FormatFor(path))
	if err != nil {
		return err
	}
	return w.Flush()
}

// Resize scales buf to the given width, preserving the aspect ratio.
// Catmull-Rom interpolation is used.  If width is not positive or equals
// the current width, buf is returned unchanged.
func Resize(buf *raster.Buffer, width int) (*raster.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || width == buf.Width || buf.Width == 0 {
		return buf, nil
	}
	height := max(1, (buf.Height*width+buf.Width/2)/buf.Width)

	src := buf.Image()
	dr := image.Rect(0, 0, width, height)
	var dst draw.Image
	switch buf.Format {
	case raster.Gray:
		dst = image.NewGray(dr)
	case raster.CMYK:
		dst = image.NewCMYK(dr)
	case raster.RGBA:
		dst = image.NewNRGBA(dr)
	default:
		dst = image.NewRGBA(dr)
	}
	draw.CatmullRom.Scale(dst, dr, src, src.Bounds(), draw.Src, nil)

	return raster.FromImage(dst), nil
}
