// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"

	"github.com/fatih/color"

	"kansogcl/internal/gclparse"
)

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gcl parse <file.gcl>")
	}
	path := fs.Arg(0)

	src, err := readSource(path)
	if err != nil {
		return err
	}

	prog, err := gclparse.ParseProgram(path, src)
	if err != nil {
		return err
	}

	fmt.Println(prog.Commands.String())
	if len(prog.FreeVars) > 0 {
		fmt.Println("free vars:", prog.FreeVars)
	}
	if len(prog.FreeArrays) > 0 {
		fmt.Println("free arrays:", prog.FreeArrays)
	}
	color.Green("parsed %s", path)
	return nil
}
