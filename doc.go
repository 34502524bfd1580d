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

// Package dtf prepares raster images for direct-to-film transfer printing.
//
// The work is split over a few sub-packages:
//
//   - [seehuhn.de/go/dtf/raster] holds pixel buffers and converts between
//     RGB, RGBA, CMYK and single-channel representations.
//   - [seehuhn.de/go/dtf/screen] turns a single channel into a binary dot
//     pattern, either with an angled periodic screen or by error diffusion.
//   - [seehuhn.de/go/dtf/spot] evaluates PostScript spot functions used by
//     the "spot" screen shape.
//   - [seehuhn.de/go/dtf/knockout] replaces a background color by a
//     graduated transparency mask.
//   - [seehuhn.de/go/dtf/halftone] combines these into the two supported
//     pipelines, CMYK separation and background knockout.
//
// This package itself only defines the error kinds shared by all of the
// above.  Every operation reports problems by returning an error; use
// [errors.Is] with [ErrInvalidFormat], [ErrDimensionMismatch],
// [ErrInvalidConfig] or [ErrUnsupportedShape] to find out what went wrong.
package dtf
