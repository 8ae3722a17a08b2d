// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"

	"kansogcl/internal/gclparse"
	"kansogcl/internal/pg"
)

func buildGraph(path, src string, deterministic bool) (*pg.Graph, *gclparse.Program, error) {
	prog, err := gclparse.ParseProgram(path, src)
	if err != nil {
		return nil, nil, err
	}
	det := pg.NonDeterministic
	if deterministic {
		det = pg.Deterministic
	}
	g, err := pg.Build(det, prog.Commands)
	if err != nil {
		return nil, nil, fmt.Errorf("building program graph: %w", err)
	}
	return g, prog, nil
}

func runGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	det := fs.Bool("det", false, "strengthen guards for deterministic selection")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gcl graph [-det] <file.gcl>")
	}
	path := fs.Arg(0)

	src, err := readSource(path)
	if err != nil {
		return err
	}
	g, _, err := buildGraph(path, src, *det)
	if err != nil {
		return err
	}
	fmt.Print(g.DOT())
	return nil
}
