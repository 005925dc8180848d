package operator

import (
	"math"
	"math/big"

	"github.com/randalmurphal/opcalc/pkg/opcalc/number"
)

// ApplyFloat evaluates a op b in float64.
//
// Division and modulo by zero return ErrZeroDivisor. Pow returns a
// *DomainError for zero raised to a negative power and for a negative base
// with a finite fractional exponent, and an *OverflowError when finite
// operands produce an infinite result. Other operators follow IEEE 754.
func ApplyFloat(op Op, a, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, ErrZeroDivisor
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, ErrZeroDivisor
		}
		return FloorMod(a, b), nil
	case Pow:
		return powFloat(a, b)
	default:
		return 0, ErrUnknownOperator
	}
}

// FloorMod returns a modulo b with the sign of b. A zero result carries the
// sign of b as well.
func FloorMod(a, b float64) float64 {
	mod := math.Mod(a, b)
	if mod != 0 {
		if (b < 0) != (mod < 0) {
			mod += b
		}
		return mod
	}
	return math.Copysign(0, b)
}

func powFloat(a, b float64) (float64, error) {
	if b == 0 {
		return 1, nil
	}
	if a == 0 && b < 0 {
		return 0, &DomainError{Op: Pow, Left: fmtFloat(a), Right: fmtFloat(b), Reason: "zero cannot be raised to a negative power"}
	}
	if a < 0 && !math.IsInf(b, 0) && b != math.Trunc(b) {
		return 0, &DomainError{Op: Pow, Left: fmtFloat(a), Right: fmtFloat(b), Reason: "negative base with fractional exponent"}
	}

	r := math.Pow(a, b)
	if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		return 0, &OverflowError{Op: Pow, Left: fmtFloat(a), Right: fmtFloat(b)}
	}
	return r, nil
}

// MaxPowBits bounds the size of an integral power. A result that would need
// more bits is reported as an *OverflowError.
const MaxPowBits = 1 << 20

// ApplyInt evaluates a op b over arbitrary-precision integers.
//
// Modulo is floor-style. Division is true division rounded once to the
// nearest float64 and yields a Fractional number, or an *OverflowError when
// the quotient is beyond float64 range. Pow with a negative exponent is
// computed in float64 and yields a Fractional number; every other
// successful result is Integral.
func ApplyInt(op Op, a, b *big.Int) (number.Number, error) {
	switch op {
	case Add:
		return number.BigInt(new(big.Int).Add(a, b)), nil
	case Sub:
		return number.BigInt(new(big.Int).Sub(a, b)), nil
	case Mul:
		return number.BigInt(new(big.Int).Mul(a, b)), nil
	case Div:
		if b.Sign() == 0 {
			return number.Number{}, ErrZeroDivisor
		}
		q, _ := new(big.Rat).SetFrac(a, b).Float64()
		if math.IsInf(q, 0) {
			return number.Number{}, intOverflow(op, a, b)
		}
		return number.Float(q), nil
	case Mod:
		if b.Sign() == 0 {
			return number.Number{}, ErrZeroDivisor
		}
		r := new(big.Int).Rem(a, b)
		if r.Sign() != 0 && r.Sign() != b.Sign() {
			r.Add(r, b)
		}
		return number.BigInt(r), nil
	case Pow:
		return powInt(a, b)
	default:
		return number.Number{}, ErrUnknownOperator
	}
}

func powInt(base, exp *big.Int) (number.Number, error) {
	if exp.Sign() < 0 {
		if base.Sign() == 0 {
			return number.Number{}, &DomainError{Op: Pow, Left: "0", Right: exp.String(), Reason: "zero cannot be raised to a negative power"}
		}
		bf, errB := number.BigInt(base).ToFloat64()
		ef, errE := number.BigInt(exp).ToFloat64()
		if errB != nil || errE != nil {
			return number.Number{}, intOverflow(Pow, base, exp)
		}
		return powFloatResult(bf, ef)
	}

	// Bases 0, 1 and -1 stay small for any exponent.
	if base.CmpAbs(big.NewInt(1)) <= 0 {
		if base.Sign() < 0 && exp.Bit(0) == 0 {
			return number.Int(1), nil
		}
		if base.Sign() == 0 && exp.Sign() == 0 {
			return number.Int(1), nil
		}
		return number.BigInt(base), nil
	}

	// |base| >= 2, so the result needs at least (bitlen-1)*exp+1 bits.
	if !exp.IsInt64() || exp.Int64() > MaxPowBits ||
		int64(base.BitLen()-1)*exp.Int64() > MaxPowBits {
		return number.Number{}, intOverflow(Pow, base, exp)
	}
	return number.BigInt(new(big.Int).Exp(base, exp, nil)), nil
}

func powFloatResult(a, b float64) (number.Number, error) {
	r, err := powFloat(a, b)
	if err != nil {
		return number.Number{}, err
	}
	return number.Float(r), nil
}

func intOverflow(op Op, a, b *big.Int) *OverflowError {
	return &OverflowError{Op: op, Left: a.String(), Right: b.String()}
}

func fmtFloat(f float64) string {
	return number.Float(f).String()
}
