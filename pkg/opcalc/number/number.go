// Package number provides the two-variant numeric type shared by the opcalc
// evaluators.
//
// A Number is either Integral (an arbitrary-precision integer) or Fractional
// (a float64). The kind is fixed at construction and never inferred from the
// magnitude of the value, so 5.0 produced by a division stays Fractional.
package number

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind distinguishes integral from fractional numbers.
type Kind int

const (
	// Integral is a whole number of any size.
	Integral Kind = iota

	// Fractional is a decimal-capable number backed by float64.
	Fractional
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Integral:
		return "integral"
	case Fractional:
		return "fractional"
	default:
		return "unknown"
	}
}

// Number is an immutable integral or fractional value.
// The zero value is Integral 0.
type Number struct {
	kind Kind
	i    *big.Int // never mutated after construction; nil means zero
	f    float64
}

// Int returns an Integral number.
func Int(v int64) Number {
	return Number{kind: Integral, i: big.NewInt(v)}
}

// BigInt returns an Integral number holding a copy of v.
func BigInt(v *big.Int) Number {
	return Number{kind: Integral, i: new(big.Int).Set(v)}
}

// Float returns a Fractional number.
func Float(v float64) Number {
	return Number{kind: Fractional, f: v}
}

// Kind returns the representation of n.
func (n Number) Kind() Kind {
	return n.kind
}

// IsIntegral reports whether n is Integral.
func (n Number) IsIntegral() bool {
	return n.kind == Integral
}

func (n Number) integer() *big.Int {
	if n.i == nil {
		return new(big.Int)
	}
	return n.i
}

// Int returns a copy of the integral value of n. Fractional values are
// truncated toward zero; NaN and infinities yield nil.
func (n Number) Int() *big.Int {
	if n.kind == Integral {
		return new(big.Int).Set(n.integer())
	}
	t, err := n.Truncate()
	if err != nil {
		return nil
	}
	return t.Int()
}

// Int64 returns n as an int64 and whether it fits. Fractional values are
// truncated toward zero.
func (n Number) Int64() (int64, bool) {
	i := n.Int()
	if i == nil || !i.IsInt64() {
		return 0, false
	}
	return i.Int64(), true
}

// Float64 returns n as a float64. Integral values too large for float64
// saturate to ±Inf; use ToFloat64 to reject them.
func (n Number) Float64() float64 {
	if n.kind == Fractional {
		return n.f
	}
	f, _ := new(big.Float).SetInt(n.integer()).Float64()
	return f
}

// ToFloat64 returns n as a float64, failing with ErrRange when an Integral
// value is beyond float64 range.
func (n Number) ToFloat64() (float64, error) {
	f := n.Float64()
	if n.kind == Integral && math.IsInf(f, 0) {
		return 0, fmt.Errorf("integer too large to convert to float: %w", ErrRange)
	}
	return f, nil
}

// IsZero reports whether n equals zero. Negative zero counts as zero.
func (n Number) IsZero() bool {
	if n.kind == Integral {
		return n.integer().Sign() == 0
	}
	return n.f == 0
}

// Truncate converts n to an Integral number, truncating toward zero.
// It fails for NaN and infinities.
func (n Number) Truncate() (Number, error) {
	if n.kind == Integral {
		return n, nil
	}
	if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
		return Number{}, fmt.Errorf("cannot convert %s to integral: %w", n, ErrRange)
	}
	i, _ := big.NewFloat(n.f).Int(nil)
	return Number{kind: Integral, i: i}, nil
}

// Round rounds a Fractional number to the given number of decimal places,
// resolving exact ties to even. Integral numbers and non-finite values are
// returned unchanged.
func (n Number) Round(places int) Number {
	if n.kind == Integral || math.IsNaN(n.f) || math.IsInf(n.f, 0) {
		return n
	}
	if places < 0 {
		places = 0
	}
	// FormatFloat rounds the exact binary value, which avoids the
	// double rounding of math.Round(f*100)/100.
	s := strconv.FormatFloat(n.f, 'f', places, 64)
	r, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return n
	}
	return Float(r)
}

// Equal reports whether n and other have the same kind and value.
// NaN is never equal to anything.
func (n Number) Equal(other Number) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == Integral {
		return n.integer().Cmp(other.integer()) == 0
	}
	return n.f == other.f
}

// String renders n the way results are displayed to users: integral values
// as plain digits, fractional values always carrying a fractional part
// ("15.0", "3.5"), exponent notation for very large or very small
// magnitudes ("1e+16", "1.5e-05"), and "inf", "-inf", "nan".
func (n Number) String() string {
	if n.kind == Integral {
		return n.integer().String()
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
