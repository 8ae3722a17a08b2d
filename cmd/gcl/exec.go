// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"

	"github.com/fatih/color"

	"kansogcl/internal/interp"
)

func runTrace(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fuel := fs.Int("fuel", interp.DefaultFuel, "maximum number of steps before giving up")
	var vars varFlags
	fs.Var(&vars, "var", "initial value for a free variable, name=value (repeatable)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gcl run [-fuel N] [-var name=value]... <file.gcl>")
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

	initial, err := applyVarOverrides(interp.ZeroMemory(g), vars)
	if err != nil {
		return err
	}

	tr := interp.Run(g, initial, *fuel)
	for i, step := range tr.Steps {
		fmt.Printf("%3d: %s --[%s]--> %s\n", i, step.From, step.Act, step.To)
	}
	switch tr.Status {
	case interp.Terminated:
		color.Green("terminated after %d steps", len(tr.Steps))
	case interp.Stuck:
		if tr.Err != nil {
			color.Red("stuck after %d steps: %s", len(tr.Steps), tr.Err)
		} else {
			color.Yellow("stuck after %d steps: no guard satisfied", len(tr.Steps))
		}
	case interp.OutOfFuel:
		color.Yellow("ran out of fuel (%d steps) without terminating", *fuel)
	}
	return nil
}

func runReach(args []string) error {
	fs := flag.NewFlagSet("reach", flag.ExitOnError)
	fuel := fs.Int("fuel", interp.DefaultStateFuel, "maximum number of distinct configurations to explore")
	var vars varFlags
	fs.Var(&vars, "var", "initial value for a free variable, name=value (repeatable)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gcl reach [-fuel N] [-var name=value]... <file.gcl>")
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

	initial, err := applyVarOverrides(interp.ZeroMemory(g), vars)
	if err != nil {
		return err
	}

	rg := interp.Explore(g, initial, *fuel)
	fmt.Printf("%d reachable configurations, %d successor edges\n", len(rg.Configs), countSucc(rg))
	if rg.Truncated {
		color.Yellow("state space truncated at fuel limit %d", *fuel)
	}
	return nil
}

func countSucc(rg *interp.ReachableGraph) int {
	n := 0
	for _, succ := range rg.Succ {
		n += len(succ)
	}
	return n
}
