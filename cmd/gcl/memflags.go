// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"strconv"
	"strings"

	"kansogcl/internal/interp"
)

// varFlags collects repeated "-var name=value" flags into an ordered
// override list applied on top of a program's zero memory.
type varFlags []string

func (v *varFlags) String() string { return strings.Join(*v, ",") }
func (v *varFlags) Set(s string) error {
	*v = append(*v, s)
	return nil
}

// applyVarOverrides parses "name=value" entries and writes them into m.
func applyVarOverrides(m interp.Memory, overrides []string) (interp.Memory, error) {
	for _, o := range overrides {
		name, valStr, ok := strings.Cut(o, "=")
		if !ok {
			return m, fmt.Errorf("invalid -var %q, want name=value", o)
		}
		val, err := strconv.ParseInt(valStr, 10, 64)
		if err != nil {
			return m, fmt.Errorf("invalid -var %q: %w", o, err)
		}
		m = m.WithVar(name, val)
	}
	return m, nil
}
