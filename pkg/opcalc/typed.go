package opcalc

import (
	calcerrors "github.com/randalmurphal/opcalc/pkg/opcalc/errors"
	"github.com/randalmurphal/opcalc/pkg/opcalc/number"
	"github.com/randalmurphal/opcalc/pkg/opcalc/operator"
)

// EvaluateTyped applies op to two operands, inferring for each whether it
// is integral or fractional.
//
// Every operand is read as an integer when possible and as a float
// otherwise: integer text, Go integers and finite Go floats (truncated
// toward zero) are integral; other numeric text is fractional. Integral
// arithmetic is exact at any size.
//
// The result representation depends only on the operand kinds and the
// operator:
//   - "/" always yields a fractional result.
//   - Any other operator on two integral operands yields an integral result.
//   - Otherwise the result is fractional.
//
// A zero divisor for "/" yields KindDivisionError. Every other failure
// (unreadable operand, unknown operator, modulo by zero, float overflow, an
// integer too large to mix with a float) yields KindInvalidInput.
//
// Example:
//
//	opcalc.EvaluateTyped("10", "+", "5").String()   // "15"
//	opcalc.EvaluateTyped("10.5", "*", "2").String() // "21.0"
//	opcalc.EvaluateTyped(10.5, "*", 2).String()     // "20"
func EvaluateTyped(a any, op string, b any) Result {
	left, err := number.FromValue(a)
	if err != nil {
		return failure(calcerrors.KindInvalidInput, calcerrors.StageParse, err)
	}
	right, err := number.FromValue(b)
	if err != nil {
		return failure(calcerrors.KindInvalidInput, calcerrors.StageParse, err)
	}

	o, ok := operator.Parse(op)
	if !ok {
		return failure(calcerrors.KindInvalidInput, calcerrors.StageDispatch,
			&calcerrors.OperatorError{Symbol: op})
	}

	if o == operator.Div && right.IsZero() {
		return failure(calcerrors.KindDivisionError, calcerrors.StageCompute, operator.ErrZeroDivisor)
	}

	if left.IsIntegral() && right.IsIntegral() {
		n, err := operator.ApplyInt(o, left.Int(), right.Int())
		if err != nil {
			return failure(calcerrors.KindInvalidInput, calcerrors.StageCompute, err)
		}
		if o == operator.Div {
			return success(n)
		}
		// A negative exponent produces a fraction; integral inputs keep an
		// integral result.
		n, err = n.Truncate()
		if err != nil {
			return failure(calcerrors.KindInvalidInput, calcerrors.StageCompute, err)
		}
		return success(n)
	}

	lf, err := left.ToFloat64()
	if err != nil {
		return failure(calcerrors.KindInvalidInput, calcerrors.StageCompute, err)
	}
	rf, err := right.ToFloat64()
	if err != nil {
		return failure(calcerrors.KindInvalidInput, calcerrors.StageCompute, err)
	}
	v, err := operator.ApplyFloat(o, lf, rf)
	if err != nil {
		return failure(calcerrors.KindInvalidInput, calcerrors.StageCompute, err)
	}
	return success(number.Float(v))
}
