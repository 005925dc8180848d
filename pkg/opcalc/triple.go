package opcalc

import (
	"strings"

	calcerrors "github.com/randalmurphal/opcalc/pkg/opcalc/errors"
	"github.com/randalmurphal/opcalc/pkg/opcalc/number"
	"github.com/randalmurphal/opcalc/pkg/opcalc/operator"
)

// tripleTokens is the token count of "operand operator operand".
const tripleTokens = 3

// tripleDecimals is the number of decimal places triple results keep.
const tripleDecimals = 2

// EvaluateTriple evaluates a whitespace-separated "operand operator operand"
// expression in floating point and rounds the result to two decimal places.
//
// Failures, in the order they are checked:
//   - not exactly three tokens, or an operand that is not a number:
//     KindInvalidExpression
//   - an operator outside + - * / % **: KindInvalidOperator
//   - "/" or "%" with a zero right operand: KindDivisionByZero
//   - an arithmetic result with no real value or that overflows:
//     KindInvalidExpression
//
// Example:
//
//	opcalc.EvaluateTriple("10 % 3").String() // "1.0"
//	opcalc.EvaluateTriple("5 ^ 2").String()  // "Invalid Operator"
func EvaluateTriple(expression string) Result {
	tokens := strings.Fields(expression)
	if len(tokens) != tripleTokens {
		return failure(calcerrors.KindInvalidExpression, calcerrors.StageTokenize,
			&calcerrors.TokenCountError{Count: len(tokens), Want: tripleTokens})
	}

	// Operands are checked before the operator.
	left, err := number.ParseFloat(tokens[0])
	if err != nil {
		return failure(calcerrors.KindInvalidExpression, calcerrors.StageParse, err)
	}
	right, err := number.ParseFloat(tokens[2])
	if err != nil {
		return failure(calcerrors.KindInvalidExpression, calcerrors.StageParse, err)
	}

	op, ok := operator.Parse(tokens[1])
	if !ok {
		return failure(calcerrors.KindInvalidOperator, calcerrors.StageDispatch,
			&calcerrors.OperatorError{Symbol: tokens[1]})
	}

	if (op == operator.Div || op == operator.Mod) && right == 0 {
		return failure(calcerrors.KindDivisionByZero, calcerrors.StageCompute, operator.ErrZeroDivisor)
	}

	v, err := operator.ApplyFloat(op, left, right)
	if err != nil {
		return failure(calcerrors.KindInvalidExpression, calcerrors.StageCompute, err)
	}
	return success(number.Float(v).Round(tripleDecimals))
}
