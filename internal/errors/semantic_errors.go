package errors

import (
	"fmt"
	"strings"

	"kansogcl/internal/ast"
	"kansogcl/internal/interp"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// Common semantic error constructors with suggestions

// UndefinedVariable creates an error for a variable referenced outside the
// program's free-variable set, with "did you mean" suggestions drawn from
// the set that was actually declared free.
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		if len(similarNames) == 1 {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
		} else {
			suggestions := strings.Join(similarNames, "', '")
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", suggestions))
		}
	} else {
		builder = builder.WithSuggestion("add it to the program's free-variable declarations").
			WithNote("every variable read or written by a command must be declared free")
	}

	return builder.Build()
}

// UndefinedArray creates an error for an array referenced outside the
// program's free-array set.
func UndefinedArray(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedArray, fmt.Sprintf("undefined array '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		suggestions := strings.Join(similarNames, "', '")
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", suggestions))
	} else {
		builder = builder.WithSuggestion("add it to the program's free-array declarations")
	}

	return builder.WithNote("array reads and updates require a prior free-array declaration").Build()
}

// UndeclaredSecurityClass creates an error for a classification that names
// a lattice node the security-lattice declaration never introduced.
func UndeclaredSecurityClass(class string, pos ast.Position, knownClasses []string) CompilerError {
	builder := NewSemanticError(ErrorUndeclaredSecurityClass,
		fmt.Sprintf("security class '%s' is not a node of the declared lattice", class), pos).
		WithLength(len(class))

	if similar := findSimilarNames(class, knownClasses); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	}
	if len(knownClasses) > 0 {
		builder = builder.WithNote(fmt.Sprintf("declared classes: %s", strings.Join(knownClasses, ", ")))
	}

	return builder.WithHelp("classifications may only reference classes declared in the lattice").Build()
}

// ParseFailure creates an error for source rejected by the GCL grammar.
func ParseFailure(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorParseFailure, message, pos).
		WithHelp("check for unbalanced 'fi'/'od' terminators and missing ';' separators").
		Build()
}

// LTLParseFailure creates an error for a malformed LTL formula.
func LTLParseFailure(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorLTLParseFailure, message, pos).
		WithHelp("formulas combine atoms with !, &&, ||, ->, X, F, G, U, R").
		Build()
}

// LatticeParseFailure creates an error for a malformed security-lattice
// edge declaration.
func LatticeParseFailure(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorLatticeParseFailure, message, pos).
		WithHelp("edges are declared as 'low < high' pairs between class names").
		Build()
}

// UnsupportedCommand creates an error for a parsed command the
// program-graph builder does not yet lower to control flow.
func UnsupportedCommand(commandName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnsupportedCommand,
		fmt.Sprintf("'%s' is parsed but not yet lowered to a program graph", commandName), pos).
		WithHelp("rewrite the loop body to avoid this command for now").
		Build()
}

// RuntimeErrorDiagnostic renders an interp.RuntimeError through the same
// reporter as every other diagnostic, preserving its original code and
// message while attaching a fix-it suggestion appropriate to its kind.
func RuntimeErrorDiagnostic(re *interp.RuntimeError, pos ast.Position) CompilerError {
	code, suggestion := runtimeErrorCode(re.Kind)
	builder := NewSemanticError(code, re.Message, pos)
	if suggestion != "" {
		builder = builder.WithSuggestion(suggestion)
	}
	return builder.Build()
}

func runtimeErrorCode(kind interp.RuntimeErrorKind) (code, suggestion string) {
	switch kind {
	case interp.DivisionByZero:
		return ErrorDivisionByZero, "guard the division with a disjunct excluding the zero divisor"
	case interp.NegativeExponent:
		return ErrorNegativeExponent, "guard the operation so the argument stays non-negative"
	case interp.VariableNotFound:
		return ErrorVariableNotFound, "declare the variable as free before referencing it"
	case interp.ArrayNotFound:
		return ErrorArrayNotFound, "declare the array as free before referencing it"
	case interp.IndexOutOfBound:
		return ErrorIndexOutOfBound, "add a guard bounding the index before the access"
	case interp.ArithmeticOverflow:
		return ErrorArithmeticOverflow, "narrow the quantifier bound or guard against large operands"
	case interp.QuantifierUnsupported:
		return ErrorQuantifierUnsupported, "quantified expressions evaluate over a fixed bounded range"
	default:
		return ErrorVariableNotFound, ""
	}
}

// MissingLoopInvariant creates an error for a `do` loop that reached
// weakest-precondition generation without an invariant annotation.
func MissingLoopInvariant(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorMissingLoopInvariant, "loop has no invariant annotation", pos).
		WithSuggestion("annotate the loop with 'inv <predicate> ;' right after 'do', before its guards").
		WithHelp("weakest-precondition generation cannot summarize an unannotated loop").
		Build()
}

// SMTBackendFailure creates an error for an SMT solver process that could
// not be started or crashed before answering.
func SMTBackendFailure(detail string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorSMTBackendFailure, fmt.Sprintf("SMT backend failure: %s", detail), pos).
		WithHelp("confirm the configured solver binary is installed and on PATH").
		Build()
}

// ObligationUnknown creates a warning for a proof obligation the SMT
// backend could not decide.
func ObligationUnknown(obligationName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorObligationUnknown,
		fmt.Sprintf("obligation '%s' returned unknown", obligationName), pos).
		WithSuggestion("strengthen the loop invariant or simplify the guard").
		Build()
}

// UnevaluableProposition creates an error for an LTL atomic proposition
// that could not be evaluated against a reachable configuration.
func UnevaluableProposition(propText string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnevaluableProposition,
		fmt.Sprintf("proposition '%s' could not be evaluated against every reachable state", propText), pos).
		WithSuggestion("reference only variables present in the program's free-variable set").
		Build()
}

// UnclassifiedTarget creates an error for a flow endpoint with no declared
// security classification; information flow treats this conservatively as
// a violation rather than silently ignoring it.
func UnclassifiedTarget(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnclassifiedTarget,
		fmt.Sprintf("'%s' has no declared security classification", name), pos).
		WithSuggestion(fmt.Sprintf("classify '%s' against a lattice node", name)).
		WithHelp("unclassified endpoints are treated as a flow violation, not skipped").
		Build()
}

// StateSpaceExploded creates an error for reachable-state enumeration that
// exceeded its fuel budget before reaching a fixed point.
func StateSpaceExploded(explored int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorStateSpaceExploded,
		fmt.Sprintf("state-space exploration stopped after %d states without reaching a fixed point", explored), pos).
		WithSuggestion("raise the fuel budget or check the program for unbounded growth").
		Build()
}

// ObligationTimeout creates an error for a proof obligation whose SMT
// check exceeded its configured wall-clock timeout.
func ObligationTimeout(obligationName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorObligationTimeout,
		fmt.Sprintf("obligation '%s' exceeded its SMT timeout", obligationName), pos).
		WithSuggestion("raise the timeout or simplify the obligation").
		Build()
}

// UnusedVariable creates a warning for a variable assigned but never read.
func UnusedVariable(name string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnusedVariable, fmt.Sprintf("variable '%s' is assigned but never read", name), pos).
		WithLength(len(name)).
		WithSuggestion("remove the assignment if the value is not needed").
		Build()
}

// UnreachableCode creates a warning for a command no reachable path ever
// executes.
func UnreachableCode(pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnreachableCode, "command is unreachable from the initial configuration", pos).
		WithSuggestion("remove the command or its guarding condition").
		Build()
}

// Helper functions

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	// Initialize first row and column
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	// Fill the matrix
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
