// SPDX-License-Identifier: Apache-2.0
package langserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnoseProgramValid(t *testing.T) {
	diags := diagnoseProgram("test.gcl", "free x ; x := 0 ; do x < 3 -> x := x + 1 od")
	assert.Empty(t, diags)
}

func TestDiagnoseProgramSyntaxError(t *testing.T) {
	diags := diagnoseProgram("test.gcl", "do x <")
	require.Len(t, diags, 1)
	assert.NotEmpty(t, diags[0].Message)
	assert.Equal(t, "gcl-parser", *diags[0].Source)
}
