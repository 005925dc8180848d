// Package operator defines the closed set of arithmetic operators understood
// by opcalc and their integer and floating-point semantics.
package operator

import (
	"errors"
	"fmt"
)

// Op is an arithmetic operator.
type Op int

const (
	// Add is "+".
	Add Op = iota + 1
	// Sub is "-".
	Sub
	// Mul is "*".
	Mul
	// Div is "/". Division is always true division.
	Div
	// Mod is "%". The result takes the sign of the divisor.
	Mod
	// Pow is "**".
	Pow
)

// ordered lists operators in canonical order.
var ordered = []Op{Add, Sub, Mul, Div, Mod, Pow}

var symbols = map[Op]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Mod: "%",
	Pow: "**",
}

var bySymbol = func() map[string]Op {
	m := make(map[string]Op, len(symbols))
	for op, s := range symbols {
		m[s] = op
	}
	return m
}()

// Parse returns the operator for symbol. Matching is exact: no surrounding
// whitespace, no aliases.
func Parse(symbol string) (Op, bool) {
	op, ok := bySymbol[symbol]
	return op, ok
}

// Symbols returns the supported operator symbols in canonical order.
func Symbols() []string {
	out := make([]string, 0, len(ordered))
	for _, op := range ordered {
		out = append(out, symbols[op])
	}
	return out
}

// String returns the operator symbol.
func (o Op) String() string {
	if s, ok := symbols[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Valid reports whether o is one of the defined operators.
func (o Op) Valid() bool {
	_, ok := symbols[o]
	return ok
}

// Sentinel errors for arithmetic.
var (
	// ErrZeroDivisor indicates division or modulo by zero.
	ErrZeroDivisor = errors.New("division by zero")

	// ErrUnknownOperator indicates an Op outside the defined set.
	ErrUnknownOperator = errors.New("unknown operator")
)

// OverflowError indicates a result that cannot be represented.
type OverflowError struct {
	Op    Op
	Left  string
	Right string
}

// Error implements the error interface.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("overflow: %s %s %s", e.Left, e.Op, e.Right)
}

// DomainError indicates an operation with no real-valued result.
type DomainError struct {
	Op     Op
	Left   string
	Right  string
	Reason string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s %s %s: %s", e.Left, e.Op, e.Right, e.Reason)
}
