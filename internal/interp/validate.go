// SPDX-License-Identifier: Apache-2.0
package interp

import (
	"fmt"

	"kansogcl/internal/pg"
)

// ValidationResult is the grader's verdict on a student-submitted trace:
// a claimed sequence of (node, memory) pairs checked against the program
// graph's actual transition relation.
type ValidationResult struct {
	Valid bool
	// FailedAt is the index into the submitted trace's edge list where
	// validation first failed; -1 if Valid or if the trace was empty.
	FailedAt int
	Reason   string
}

// ClaimedStep is one edge of a student-submitted trace: the action they
// claim to have taken and the memory they claim resulted.
type ClaimedStep struct {
	From pg.NodeID
	To   pg.NodeID
	Mem  Memory
}

// ValidateTrace checks that a student-submitted sequence of claimed
// steps is a genuine walk of g's transition relation starting at
// (Start, initial): each consecutive pair must be connected by some
// edge out of From whose action is enabled in the preceding memory and
// whose resulting memory matches the student's claim exactly. This is
// the grader's contract for accepting a hand-traced execution instead
// of (or in addition to) running Run itself.
func ValidateTrace(g *pg.Graph, initial Memory, claimed []ClaimedStep) ValidationResult {
	if len(claimed) == 0 {
		return ValidationResult{Valid: true, FailedAt: -1}
	}
	cur := initial
	curNode := pg.Start
	for i, cs := range claimed {
		if cs.From != curNode {
			return ValidationResult{
				Valid: false, FailedAt: i,
				Reason: fmt.Sprintf("expected step %d to start at %s, claim starts at %s", i, curNode, cs.From),
			}
		}
		matched := false
		var lastErr error
		for _, e := range g.Outgoing(curNode) {
			if e.To != cs.To {
				continue
			}
			nextMem, enabled, err := step(e, cur)
			if err != nil {
				lastErr = err
				continue
			}
			if !enabled {
				continue
			}
			if !sameMemory(nextMem, cs.Mem) {
				continue
			}
			matched = true
			cur = nextMem
			curNode = e.To
			break
		}
		if !matched {
			reason := fmt.Sprintf("no enabled edge %s -> %s reproduces the claimed memory at step %d", curNode, cs.To, i)
			if lastErr != nil {
				reason = fmt.Sprintf("%s (last evaluation error: %s)", reason, lastErr)
			}
			return ValidationResult{Valid: false, FailedAt: i, Reason: reason}
		}
	}
	return ValidationResult{Valid: true, FailedAt: -1}
}

func sameMemory(a, b Memory) bool {
	return memoryKey(a) == memoryKey(b)
}
