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
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/dtf/screen"
	"seehuhn.de/go/dtf/spot"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "List the screen shapes and spot functions",
	Args:  cobra.NoArgs,
	RunE:  runShapes,
}

func init() {
	shapesCmd.Flags().Bool("programs", false, "show the PostScript code of the spot functions")
	rootCmd.AddCommand(shapesCmd)
}

func runShapes(cmd *cobra.Command, args []string) error {
	programs, _ := cmd.Flags().GetBool("programs")
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Screen shapes:")
	for _, s := range screen.Shapes {
		fmt.Fprintln(w, "  "+string(s))
	}

	fmt.Fprintln(w, "Spot functions (--shape spot --spot NAME):")
	for _, name := range spot.Names() {
		if !programs {
			fmt.Fprintln(w, "  "+name)
			continue
		}
		f, err := spot.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-18s { %s }\n", name, strings.Join(strings.Fields(f.Program), " "))
	}
	return nil
}
