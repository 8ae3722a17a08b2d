// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/fatih/color"

	"kansogcl/internal/gclparse"
	"kansogcl/internal/pg"
	"kansogcl/internal/pv"
	"kansogcl/internal/smt"
)

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	post := fs.String("post", "true", "postcondition the program must establish")
	solver := fs.String("solver", "z3", "SMT-LIB solver binary, invoked as `solver -in`")
	timeout := fs.Duration("timeout", 5*time.Second, "per-obligation solver timeout")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gcl verify -post EXPR [-solver BIN] [-timeout DUR] <file.gcl>")
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
	postExpr, err := gclparse.ParseAssertion("-post", *post)
	if err != nil {
		return fmt.Errorf("parsing -post: %w", err)
	}

	g, err := pg.Build(pg.NonDeterministic, prog.Commands)
	if err != nil {
		return fmt.Errorf("building program graph: %w", err)
	}

	var vars, arrays []string
	for _, t := range pg.FreeVars(g) {
		if t.IsArray() {
			arrays = append(arrays, t.Name)
		} else {
			vars = append(vars, t.Name)
		}
	}
	funcs := collectFunctions(prog.Commands, postExpr)

	obligations := pv.Generate(prog.Commands, postExpr)
	driver := smt.NewDriver(*solver, []string{"-in"}, *timeout)
	verdicts := pv.Discharge(context.Background(), driver, obligations, vars, arrays, funcs)

	failed := 0
	for _, v := range verdicts {
		status := v.Result.String()
		if v.Err != nil {
			status = "error: " + v.Err.Error()
		}
		fmt.Printf("%-20s %s\n", v.Obligation.Name, status)
		if v.Err != nil || v.Result != smt.Unsat {
			failed++
		}
	}

	if failed == 0 {
		color.Green("all %d obligations discharged", len(verdicts))
	} else {
		color.Red("%d of %d obligations not discharged", failed, len(verdicts))
	}
	return nil
}
