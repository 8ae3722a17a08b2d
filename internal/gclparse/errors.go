// SPDX-License-Identifier: Apache-2.0
package gclparse

import "kansogcl/internal/ast"

// ParseError is returned by every Parse* entry point on failure: a
// plain error satisfies callers that only print it, while Pos lets a
// caller that can do better (an LSP diagnostic, an error-reporter
// caret) locate the failure in the source.
type ParseError struct {
	Pos     ast.Position
	Message string
}

func (e *ParseError) Error() string { return e.Message }
