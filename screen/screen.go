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
	"seehuhn.de/go/dtf/raster"
)

// Screen converts a continuous-tone channel into a binary channel.
//
// The result has the same size as ch, and every sample is either 0 or
// 255.  Larger input samples lead to more samples set to 255.
// The input channel is not modified.
func Screen(ch *raster.Channel, cfg Config) (*raster.Channel, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ch.Width == 0 || ch.Height == 0 {
		return raster.NewChannel(ch.Width, ch.Height), nil
	}

	if cfg.shape() == Diffusion {
		return diffuse(ch, cfg.cutoff()), nil
	}

	angle := cfg.angle()
	rotated := rotate(ch, angle)

	grid, err := NewGrid(rotated.Width, rotated.Height, &cfg)
	if err != nil {
		return nil, err
	}
	binary, err := grid.Threshold(rotated)
	if err != nil {
		return nil, err
	}

	back := rotate(binary, -angle)
	return crop(back, ch.Width, ch.Height), nil
}
