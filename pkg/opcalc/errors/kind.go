// Package errors defines the failure taxonomy of the opcalc evaluators.
//
// Every failed evaluation ends in exactly one Kind. Each Kind has a fixed,
// user-visible sentinel string. Callers branch on the Kind and never need to
// compare strings:
//
//	r := opcalc.EvaluateTriple("5 / 0")
//	if r.Kind() == errors.KindDivisionByZero {
//	    // ...
//	}
//
// The underlying cause is kept on the Failure for logging and debugging.
package errors

import (
	"errors"
	"fmt"
)

// Kind is a terminal evaluation outcome.
type Kind int

const (
	// KindNone means the evaluation succeeded.
	KindNone Kind = iota

	// KindInvalidExpression means a token triple was malformed.
	// Examples: wrong token count, non-numeric operand, overflow in "**".
	KindInvalidExpression

	// KindInvalidOperator means a token triple used an unsupported operator.
	KindInvalidOperator

	// KindDivisionByZero means a token triple divided or took a modulo by zero.
	KindDivisionByZero

	// KindInvalidInput means a typed calculation could not be performed.
	// Examples: unparseable operand, unsupported operator, modulo by zero.
	KindInvalidInput

	// KindDivisionError means a typed calculation divided by zero.
	KindDivisionError
)

var kindNames = map[Kind]string{
	KindNone:              "none",
	KindInvalidExpression: "invalid_expression",
	KindInvalidOperator:   "invalid_operator",
	KindDivisionByZero:    "division_by_zero",
	KindInvalidInput:      "invalid_input",
	KindDivisionError:     "division_error",
}

var sentinels = map[Kind]string{
	KindInvalidExpression: "Invalid Expression",
	KindInvalidOperator:   "Invalid Operator",
	KindDivisionByZero:    "Division by Zero",
	KindInvalidInput:      "Invalid Input",
	KindDivisionError:     "Division Error",
}

// String returns the machine-friendly kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Sentinel returns the user-visible outcome string.
// KindNone has no sentinel and returns "".
func (k Kind) Sentinel() string {
	return sentinels[k]
}

// ParseKind returns the Kind for a machine name as produced by String.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return KindNone, false
}

// FromSentinel returns the Kind whose sentinel is s.
func FromSentinel(s string) (Kind, bool) {
	for k, v := range sentinels {
		if v == s {
			return k, true
		}
	}
	return KindNone, false
}

// Stage names the evaluation step that failed.
type Stage string

const (
	StageTokenize Stage = "tokenize"
	StageParse    Stage = "parse"
	StageDispatch Stage = "dispatch"
	StageCompute  Stage = "compute"
)

// Failure is a categorized evaluation failure.
type Failure struct {
	// Kind is the terminal outcome.
	Kind Kind

	// Stage is the step that failed.
	Stage Stage

	// Err is the underlying cause. May be nil.
	Err error
}

// New creates a Failure.
func New(kind Kind, stage Stage, err error) *Failure {
	return &Failure{Kind: kind, Stage: stage, Err: err}
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s (stage: %s)", f.Kind.Sentinel(), f.Err, f.Stage)
	}
	return fmt.Sprintf("%s (stage: %s)", f.Kind.Sentinel(), f.Stage)
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Categorize determines the Kind of an error.
//
// An error that already carries a Failure keeps its Kind. Otherwise the
// typed causes are mapped: TokenCountError to InvalidExpression and
// OperatorError to InvalidOperator. Anything else is InvalidInput.
func Categorize(err error) Kind {
	if err == nil {
		return KindNone
	}

	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}

	var tokenErr *TokenCountError
	if errors.As(err, &tokenErr) {
		return KindInvalidExpression
	}

	var opErr *OperatorError
	if errors.As(err, &opErr) {
		return KindInvalidOperator
	}

	return KindInvalidInput
}

// Is reports whether err categorizes as kind.
func Is(err error, kind Kind) bool {
	return Categorize(err) == kind
}
