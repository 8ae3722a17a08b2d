// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"sort"

	"kansogcl/internal/lattice"
	"kansogcl/internal/pg"
	"kansogcl/internal/sign"
)

func runSign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gcl sign <file.gcl>")
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

	initial := sign.NewMemory()
	for _, t := range pg.FreeVars(g) {
		if t.IsArray() {
			initial = initial.WithArray(t.Name, sign.SignsOf(sign.Zero))
		} else {
			initial = initial.WithVar(t.Name, sign.Zero)
		}
	}

	analysis := sign.Analysis{Initial0: initial}
	result := lattice.Analyse[sign.MemSet](analysis, g, lattice.FIFO)

	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].String() < nodes[j].String() })
	for _, n := range nodes {
		facts := result.Facts[n]
		fmt.Printf("%s: %d candidate memories\n", n, len(facts))
		for _, signs := range unionSigns(facts) {
			fmt.Printf("    %s = %s\n", signs.name, signs.vals)
		}
	}
	fmt.Printf("semantic evaluations: %d\n", result.SemanticCallCount)
	return nil
}

type namedSigns struct {
	name string
	vals sign.Signs
}

func unionSigns(facts sign.MemSet) []namedSigns {
	union := map[string]sign.Signs{}
	for _, m := range facts {
		for name, s := range m.Variables {
			union[name] = union[name].Union(sign.SignsOf(s))
		}
		for name, s := range m.Arrays {
			union[name] = union[name].Union(s)
		}
	}
	names := make([]string, 0, len(union))
	for name := range union {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]namedSigns, len(names))
	for i, name := range names {
		out[i] = namedSigns{name: name, vals: union[name]}
	}
	return out
}
