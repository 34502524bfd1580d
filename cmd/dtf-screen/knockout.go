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

	"seehuhn.de/go/dtf/halftone"
)

var knockoutCmd = &cobra.Command{
	Use:   "knockout",
	Short: "Remove a background color and screen the transparency of an image",
	Args:  cobra.NoArgs,
	RunE:  runKnockout,
}

func init() {
	addScreenFlags(knockoutCmd)
	flags := knockoutCmd.Flags()
	flags.Float64("angle", halftone.DefaultAngles[3], "screen angle in degrees")
	flags.String("bg-color", "", "background color to remove, for example #ffffff")
	flags.Float64("tolerance", halftone.DefaultTolerance, "color distance over which the background fades out")
	flags.Bool("soft", false, "remove the background but do not screen the result")
	rootCmd.AddCommand(knockoutCmd)
}

func runKnockout(cmd *cobra.Command, args []string) error {
	opts, err := screenOptions(cmd, halftone.KnockoutMode)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	opts.Angle, _ = flags.GetFloat64("angle")
	opts.BgColor, _ = flags.GetString("bg-color")
	opts.Tolerance, _ = flags.GetFloat64("tolerance")
	soft, _ := flags.GetBool("soft")

	process := halftone.Knockout
	if soft {
		process = halftone.Soft
	}
	return run(cmd, opts, process)
}
