// SPDX-License-Identifier: Apache-2.0
// Command gcl is the command-line front end for the GCL analysis core:
// one subcommand per pipeline stage (parse, program graph, concrete
// execution, sign analysis, information flow, verification conditions,
// LTL model checking), each driven straight off internal/gclparse and
// the analysis packages it feeds.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "parse":
		err = runParse(os.Args[2:])
	case "graph":
		err = runGraph(os.Args[2:])
	case "run":
		err = runTrace(os.Args[2:])
	case "reach":
		err = runReach(os.Args[2:])
	case "sign":
		err = runSign(os.Args[2:])
	case "flow":
		err = runFlow(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	case "ltl":
		err = runLTL(os.Args[2:])
	case "help", "-h", "-help", "--help":
		usage()
		return
	default:
		color.Red("unknown subcommand %q", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Usage: gcl <subcommand> [flags] <file.gcl>

Subcommands:
  parse  <file>                      parse and print the command sequence
  graph  [-det] <file>                build the program graph, print DOT
  run    [-fuel N] <file>             trace-mode concrete execution
  reach  [-fuel N] <file>             explore reachable configurations
  sign   <file>                       sign-analysis fixed point per node
  flow   -lattice F -classes F <file> information-flow classification
  verify -post EXPR [-solver BIN] <file>  generate and discharge VCs
  ltl    -formula EXPR <file>         model-check an LTL property`)
}

func readSource(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(src), nil
}
