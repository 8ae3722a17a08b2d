// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/fatih/color"

	"kansogcl/internal/buchi"
	"kansogcl/internal/gclparse"
	"kansogcl/internal/interp"
)

func runLTL(args []string) error {
	fs := flag.NewFlagSet("ltl", flag.ExitOnError)
	formula := fs.String("formula", "", "LTL formula to check, e.g. \"G (x >= 0)\"")
	fuel := fs.Int("fuel", interp.DefaultStateFuel, "maximum number of distinct configurations to explore")
	var vars varFlags
	fs.Var(&vars, "var", "initial value for a free variable, name=value (repeatable)")
	fs.Parse(args)
	if fs.NArg() != 1 || *formula == "" {
		return fmt.Errorf("usage: gcl ltl -formula EXPR [-var name=value]... <file.gcl>")
	}
	path := fs.Arg(0)

	src, err := readSource(path)
	if err != nil {
		return err
	}
	g, _, err := buildGraph(path, src, false)
	if err != nil {
		return err
	}

	f, err := gclparse.ParseLTL("-formula", *formula)
	if err != nil {
		return fmt.Errorf("parsing -formula: %w", err)
	}

	initial, err := applyVarOverrides(interp.ZeroMemory(g), vars)
	if err != nil {
		return err
	}
	rg := interp.Explore(g, initial, *fuel)
	if rg.Truncated {
		color.Yellow("state space truncated at fuel limit %d; verdict may be unsound", *fuel)
	}

	verdict := buchi.Check(f, rg)
	if verdict.Holds {
		color.Green("holds")
		return nil
	}

	color.Red("violated")
	for i, step := range verdict.Lasso {
		fmt.Printf("%3d: %s  %s\n", i, step.Node, describeMemory(step.Mem))
	}
	return nil
}

func describeMemory(m interp.Memory) string {
	names := make([]string, 0, len(m.Variables))
	for n := range m.Variables {
		names = append(names, n)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", n, m.Variables[n])
	}
	return out
}
