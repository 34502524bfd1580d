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

// Dtf-screen converts images into halftone separations for
// direct-to-film printing.
//
// Usage:
//
//	dtf-screen separate -i in.png -o out.png [--lpi 45] [--shape round] ...
//	dtf-screen knockout -i in.png -o out.png [--bg-color #ffffff] ...
//	dtf-screen identify in.png
//	dtf-screen shapes
package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dtf-screen",
	Short: "Halftone screening for direct-to-film printing",

	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print progress information")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("dtf-screen: ")

	if err := rootCmd.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
