package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kansogcl/internal/ast"
	"kansogcl/internal/interp"
)

func TestErrorReporter(t *testing.T) {
	source := `x := 0 ;
do x < 3 ->
    x := unknownVar
od`

	reporter := NewErrorReporter("test.gcl", source)

	err := UndefinedVariable("unknownVar", ast.Position{Line: 3, Column: 10}, []string{"knownVar", "anotherVar"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable")
	assert.Contains(t, formatted, "unknownVar")
	assert.Contains(t, formatted, "test.gcl:3:10")
	assert.Contains(t, formatted, "did you mean")
	assert.Contains(t, formatted, "knownVar")
}

func TestUndefinedVariableError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UndefinedVariable("balace", pos, []string{"balance"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Contains(t, err.Message, "balace")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'balance'")

	err = UndefinedVariable("xyz", pos, []string{})
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "free-variable declarations")
}

func TestUndefinedArrayError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UndefinedArray("arr", pos, []string{"arry"})
	assert.Equal(t, ErrorUndefinedArray, err.Code)
	assert.Contains(t, err.Message, "undefined array 'arr'")
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'arry'")
}

func TestUndeclaredSecurityClassError(t *testing.T) {
	pos := ast.Position{Line: 2, Column: 3}

	err := UndeclaredSecurityClass("Secrat", pos, []string{"Secret", "Public"})
	assert.Equal(t, ErrorUndeclaredSecurityClass, err.Code)
	assert.Contains(t, err.Message, "Secrat")
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'Secret'")
	assert.Contains(t, err.Notes[0], "Secret, Public")
}

func TestRuntimeErrorDiagnostic(t *testing.T) {
	pos := ast.Position{Line: 4, Column: 1}
	re := &interp.RuntimeError{Kind: interp.DivisionByZero, Message: "division by zero"}

	err := RuntimeErrorDiagnostic(re, pos)
	assert.Equal(t, ErrorDivisionByZero, err.Code)
	assert.Contains(t, err.Message, "division by zero")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "guard the division")
}

func TestMissingLoopInvariantError(t *testing.T) {
	pos := ast.Position{Line: 2, Column: 1}

	err := MissingLoopInvariant(pos)
	assert.Equal(t, ErrorMissingLoopInvariant, err.Code)
	assert.Contains(t, err.Message, "no invariant annotation")
	assert.Contains(t, err.Suggestions[0].Message, "annotate the loop")
}

func TestUnclassifiedTargetError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	err := UnclassifiedTarget("h", pos)
	assert.Equal(t, ErrorUnclassifiedTarget, err.Code)
	assert.Contains(t, err.Message, "'h' has no declared security classification")
}

func TestWarningFormatting(t *testing.T) {
	source := `x := 42`
	reporter := NewErrorReporter("test.gcl", source)

	err := UnusedVariable("x", ast.Position{Line: 1, Column: 1})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning[W0001]")
	assert.Contains(t, formatted, "never read")
	assert.Contains(t, formatted, "remove the assignment")
}

func TestUnreachableCodeWarning(t *testing.T) {
	pos := ast.Position{Line: 5, Column: 1}

	err := UnreachableCode(pos)
	assert.Equal(t, WarningUnreachableCode, err.Code)
	assert.Contains(t, err.Message, "unreachable")
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `let variable = value;`
	reporter := NewErrorReporter("test.gcl", source)

	marker := reporter.createMarker(5, 8, Error) // "variable" is 8 chars at column 5

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces) // column 5 means 4 spaces before
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets) // 8 character length
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo")) // deletion is 1, not 2
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"balance", "amount", "total", "balanceOf", "xyz"}

	similar := findSimilarNames("balace", candidates)
	assert.Contains(t, similar, "balance")
	assert.NotContains(t, similar, "xyz") // too different

	similar = findSimilarNames("verydifferent", candidates)
	assert.Empty(t, similar)
}

func TestErrorLevels(t *testing.T) {
	source := `test`
	reporter := NewErrorReporter("test.gcl", source)
	pos := ast.Position{Line: 1, Column: 1}

	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	warningErr := CompilerError{Level: Warning, Message: "test warning", Position: pos}

	errorFormatted := reporter.FormatError(errorErr)
	warningFormatted := reporter.FormatError(warningErr)

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}
