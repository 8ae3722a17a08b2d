// SPDX-License-Identifier: Apache-2.0
// Package smt drives an external SMT-LIB solver as a line-oriented
// subprocess (§6, "SMT backend"): the core never links a solver, it only
// shells out to one the caller names on the command line, mirroring the
// out-of-process contract the specification treats as an external
// collaborator.
package smt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result is the verdict of a single `check-sat` call.
type Result int

const (
	Unsat Result = iota
	Sat
	Unknown
	Timeout
)

func (r Result) String() string {
	switch r {
	case Unsat:
		return "unsat"
	case Sat:
		return "sat"
	case Unknown:
		return "unknown"
	case Timeout:
		return "timeout"
	default:
		return "?"
	}
}

// Driver spawns BinaryPath with Args for every obligation: a fresh
// process per check, since the spec calls for "a fresh backend, replay
// the prelude" rather than a long-lived session (§6). This keeps one
// solver crash or one obligation's divergence from contaminating the
// next obligation's run.
type Driver struct {
	BinaryPath string
	Args       []string
	Timeout    time.Duration
}

// NewDriver builds a Driver with a sane default timeout; callers
// targeting a specific solver pass its binary name and dialect flags,
// e.g. NewDriver("z3", []string{"-in"}, 5*time.Second).
func NewDriver(binaryPath string, args []string, timeout time.Duration) *Driver {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Driver{BinaryPath: binaryPath, Args: args, Timeout: timeout}
}

// Check replays prelude, asserts the negation of formula, and issues
// check-sat. formula and prelude are raw SMT-LIB text; formula must be a
// single well-formed Bool term (no surrounding "(assert ...)").
func (d *Driver) Check(ctx context.Context, prelude, formula string) (Result, string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	var script strings.Builder
	script.WriteString(prelude)
	script.WriteString("\n(assert (not ")
	script.WriteString(formula)
	script.WriteString("))\n(check-sat)\n(exit)\n")

	cmd := exec.CommandContext(ctx, d.BinaryPath, d.Args...)
	cmd.Stdin = strings.NewReader(script.String())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Timeout, "", nil
	}
	if err != nil {
		return Unknown, "", fmt.Errorf("smt: spawning %s: %w: %s", d.BinaryPath, err, stderr.String())
	}
	return parseCheckSat(stdout.String())
}

// parseCheckSat scans the solver's output for the first recognised
// check-sat response, tolerating a preceding banner or warning lines
// some solvers write to stdout.
func parseCheckSat(out string) (Result, string, error) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch line {
		case "unsat":
			return Unsat, out, nil
		case "sat":
			return Sat, out, nil
		case "unknown":
			return Unknown, out, nil
		}
	}
	return Unknown, out, fmt.Errorf("smt: could not parse check-sat response")
}
