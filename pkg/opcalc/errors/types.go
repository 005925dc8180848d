package errors

import "fmt"

// TokenCountError indicates an expression with the wrong number of tokens.
type TokenCountError struct {
	Count int
	Want  int
}

// Error implements the error interface.
func (e *TokenCountError) Error() string {
	return fmt.Sprintf("expected %d tokens, got %d", e.Want, e.Count)
}

// OperatorError indicates an operator symbol outside the supported set.
type OperatorError struct {
	Symbol string
}

// Error implements the error interface.
func (e *OperatorError) Error() string {
	return fmt.Sprintf("unsupported operator %q", e.Symbol)
}
