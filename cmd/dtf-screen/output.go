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
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/dtf/halftone"
	"seehuhn.de/go/dtf/internal/imageio"
	"seehuhn.de/go/dtf/raster"
	"seehuhn.de/go/dtf/screen"
)

var printer = message.NewPrinter(language.English)

// addScreenFlags registers the flags shared by the "separate" and
// "knockout" commands.
func addScreenFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("input", "i", "", "input image file, or - for standard input")
	flags.StringP("output", "o", "", "output file (.png or .tif), or - for standard output")
	flags.Float64("lpi", screen.DefaultFrequency, "screen frequency in lines per inch")
	flags.String("shape", string(screen.Round), "screen shape (line, round, diffusion, spot)")
	flags.Float64("cell-scale", 1, "multiplier for the screen cell size")
	flags.String("spot", screen.DefaultSpot, "spot function name or PostScript program, for --shape spot")
	flags.Float64("cutoff", screen.DefaultCutoff, "fraction of samples clipped at each end, for --shape diffusion")
	flags.Int("width", 0, "resize the input to this width before screening")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
}

// screenOptions reads the flags registered by addScreenFlags.
func screenOptions(cmd *cobra.Command, mode halftone.Mode) (*halftone.Options, error) {
	flags := cmd.Flags()
	lpi, _ := flags.GetFloat64("lpi")
	shapeName, _ := flags.GetString("shape")
	cellScale, _ := flags.GetFloat64("cell-scale")
	spotName, _ := flags.GetString("spot")
	cutoff, _ := flags.GetFloat64("cutoff")

	shape, err := screen.ParseShape(shapeName)
	if err != nil {
		return nil, err
	}
	if cutoff == 0 {
		cutoff = -1 // no clipping
	}

	opts := &halftone.Options{
		Mode:      mode,
		LPI:       lpi,
		Shape:     shape,
		CellScale: cellScale,
		Spot:      spotName,
		Cutoff:    cutoff,
	}
	return opts, nil
}

// run reads the input image, processes it and writes the result.
func run(cmd *cobra.Command, opts *halftone.Options, process func(*raster.Buffer, *halftone.Options) (*raster.Buffer, error)) error {
	inPath, _ := cmd.Flags().GetString("input")
	outPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")

	if err := opts.Validate(); err != nil {
		return err
	}
	if outPath == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write image data to a terminal")
	}

	start := time.Now()
	buf, format, err := imageio.ReadFile(inPath)
	if err != nil {
		return err
	}
	log.Print(printer.Sprintf("read %s: %d×%d %s image (%s)", inPath, buf.Width, buf.Height, buf.Format, format))

	if width > 0 {
		buf, err = imageio.Resize(buf, width)
		if err != nil {
			return err
		}
		log.Print(printer.Sprintf("resized to %d×%d", buf.Width, buf.Height))
	}

	log.Print(opts)
	out, err := process(buf, opts)
	if err != nil {
		return err
	}

	if outPath == "-" {
		err = imageio.Encode(os.Stdout, out, imageio.PNG)
	} else {
		err = imageio.WriteFile(outPath, out)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.Print(printer.Sprintf("wrote %s: %d pixels in %v", outPath, out.Width*out.Height, time.Since(start).Round(time.Millisecond)))
	return nil
}
