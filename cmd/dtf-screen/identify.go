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

package main

import (
	"github.com/spf13/cobra"

	"seehuhn.de/go/dtf/internal/imageio"
	"seehuhn.de/go/dtf/raster"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Show size, format and transparency of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	buf, format, err := imageio.ReadFile(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printer.Fprintf(w, "File:        %s\n", path)
	printer.Fprintf(w, "Format:      %s\n", format)
	printer.Fprintf(w, "Dimensions:  %d x %d (%d pixels)\n", buf.Width, buf.Height, buf.Width*buf.Height)
	printer.Fprintf(w, "Samples:     %s\n", buf.Format)

	if buf.Format != raster.RGBA {
		printer.Fprintf(w, "Alpha:       opaque\n")
		return nil
	}
	var clear, partial int
	for i := 3; i < len(buf.Pix); i += 4 {
		switch buf.Pix[i] {
		case 0:
			clear++
		case 255:
		default:
			partial++
		}
	}
	n := max(buf.Width*buf.Height, 1)
	printer.Fprintf(w, "Alpha:       %d transparent (%.1f%%), %d partial (%.1f%%)\n",
		clear, 100*float64(clear)/float64(n), partial, 100*float64(partial)/float64(n))
	return nil
}
