// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"

	"github.com/fatih/color"

	"kansogcl/internal/ast"
	"kansogcl/internal/flowsec"
	"kansogcl/internal/gclparse"
	"kansogcl/internal/ordered"
)

func runFlow(args []string) error {
	fs := flag.NewFlagSet("flow", flag.ExitOnError)
	latticePath := fs.String("lattice", "", "path to a security-lattice edge file (\"Low < High ;\" per line)")
	classesPath := fs.String("classes", "", "path to a classification file (\"x : Low ;\" per line)")
	fs.Parse(args)
	if fs.NArg() != 1 || *latticePath == "" || *classesPath == "" {
		return fmt.Errorf("usage: gcl flow -lattice <file> -classes <file> <file.gcl>")
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

	latSrc, err := readSource(*latticePath)
	if err != nil {
		return err
	}
	edges, err := gclparse.ParseLattice(*latticePath, latSrc)
	if err != nil {
		return err
	}
	clsSrc, err := readSource(*classesPath)
	if err != nil {
		return err
	}
	classes, err := gclparse.ParseClassification(*classesPath, clsSrc)
	if err != nil {
		return err
	}

	flows := flowsec.ComputeFlows(prog.Commands, ordered.NewSet[ast.Target]())
	verdict := flowsec.Classify(flows, classes, flowsec.NewSecurityLattice(edges))

	fmt.Printf("%d flows, %d allowed, %d violating\n", len(verdict.Actual), len(verdict.Allowed), len(verdict.Violations))
	for _, v := range verdict.Violations {
		fmt.Println("  violation:", v)
	}

	if len(verdict.Violations) == 0 {
		color.Green("no information-flow violations")
	} else {
		color.Red("%d information-flow violations found", len(verdict.Violations))
	}
	return nil
}
