// SPDX-License-Identifier: MIT

// Command matcalc is a calculator for small dense matrices.
//
//	matcalc det a.txt
//	matcalc solve --mode decimal system.txt
//	matcalc eval -m A=a.txt -m B=b.txt "A + 4*B"
//
// Run "matcalc help" for the full command list.
package main

import (
	"os"

	"github.com/katalvlaran/matcalc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
