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
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/dtf/halftone"
	"seehuhn.de/go/dtf/internal/imageio"
	"seehuhn.de/go/dtf/raster"
)

var separateCmd = &cobra.Command{
	Use:   "separate",
	Short: "Screen the cyan, magenta, yellow and black inks of an image",
	Args:  cobra.NoArgs,
	RunE:  runSeparate,
}

func init() {
	addScreenFlags(separateCmd)
	separateCmd.Flags().Float64Slice("angles", halftone.DefaultAngles[:], "screen angles for C,M,Y,K in degrees")
	separateCmd.Flags().Bool("plates", false, "also write one film plate per ink, next to the output file")
	rootCmd.AddCommand(separateCmd)
}

func runSeparate(cmd *cobra.Command, args []string) error {
	opts, err := screenOptions(cmd, halftone.SeparationMode)
	if err != nil {
		return err
	}
	opts.Angles, _ = cmd.Flags().GetFloat64Slice("angles")
	plates, _ := cmd.Flags().GetBool("plates")
	outPath, _ := cmd.Flags().GetString("output")
	if plates && outPath == "-" {
		return fmt.Errorf("--plates needs an output file name")
	}

	return run(cmd, opts, func(buf *raster.Buffer, opts *halftone.Options) (*raster.Buffer, error) {
		if !plates {
			return halftone.Separate(buf, opts)
		}

		cmykOpts := *opts
		cmykOpts.CMYKOutput = true
		inks, err := halftone.Separate(buf, &cmykOpts)
		if err != nil {
			return nil, err
		}
		if err := writePlates(outPath, inks); err != nil {
			return nil, err
		}
		c, _ := inks.Plane(0)
		m, _ := inks.Plane(1)
		y, _ := inks.Plane(2)
		k, _ := inks.Plane(3)
		return raster.MergeCMYK(c, m, y, k)
	})
}

// writePlates writes one grayscale image per ink, black where the ink is
// printed.  The files are named after outPath with the ink name appended.
func writePlates(outPath string, inks *raster.Buffer) error {
	ext := filepath.Ext(outPath)
	base := strings.TrimSuffix(outPath, ext)
	for i, name := range halftone.InkNames {
		ch, err := inks.Plane(i)
		if err != nil {
			return err
		}
		for j, v := range ch.Pix {
			ch.Pix[j] = 255 - v
		}
		plate := &raster.Buffer{Width: ch.Width, Height: ch.Height, Format: raster.Gray, Pix: ch.Pix}
		path := base + "-" + name + ext
		if err := imageio.WriteFile(path, plate); err != nil {
			return err
		}
		log.Printf("wrote %s plate to %s", name, path)
	}
	return nil
}
