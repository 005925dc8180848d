package opcalc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calcerrors "github.com/randalmurphal/opcalc/pkg/opcalc/errors"
	"github.com/randalmurphal/opcalc/pkg/opcalc/number"
)

func TestEvaluateTriple(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"add", "10 + 5", "15.0"},
		{"subtract", "3 - 10", "-7.0"},
		{"multiply", "2.5 * 4", "10.0"},
		{"divide", "10 / 4", "2.5"},
		{"modulo", "10 % 3", "1.0"},
		{"power", "2 ** 10", "1024.0"},
		{"modulo negative dividend", "-7 % 3", "2.0"},
		{"modulo negative divisor", "7 % -3", "-2.0"},
		{"rounds down", "1 / 3", "0.33"},
		{"rounds up", "2 / 3", "0.67"},
		{"binary representation below tie", "2.675 * 1", "2.67"},
		{"exact tie to even", "0.125 + 0", "0.12"},
		{"extra whitespace", "  3   *\t4  ", "12.0"},
		{"exponent notation", "1e3 + 1", "1001.0"},
		{"overflow to infinity", "1e308 * 10", "inf"},
		{"nan operand", "nan + 1", "nan"},
		{"huge operand", "1e400 - 1", "inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EvaluateTriple(tt.expr)
			require.True(t, r.OK(), "unexpected failure: %v", r.Err)
			assert.Equal(t, number.Fractional, r.Value.Kind())
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestEvaluateTriple_Failures(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		kind  calcerrors.Kind
		stage calcerrors.Stage
	}{
		{"empty", "", calcerrors.KindInvalidExpression, calcerrors.StageTokenize},
		{"single token", "abc", calcerrors.KindInvalidExpression, calcerrors.StageTokenize},
		{"no spaces", "5+2", calcerrors.KindInvalidExpression, calcerrors.StageTokenize},
		{"too many tokens", "1 + 2 + 3", calcerrors.KindInvalidExpression, calcerrors.StageTokenize},
		{"non-numeric left", "abc + 2", calcerrors.KindInvalidExpression, calcerrors.StageParse},
		{"non-numeric right", "2 + abc", calcerrors.KindInvalidExpression, calcerrors.StageParse},
		{"hex operand", "0x10 + 1", calcerrors.KindInvalidExpression, calcerrors.StageParse},
		{"operands checked first", "abc ^ 2", calcerrors.KindInvalidExpression, calcerrors.StageParse},
		{"caret", "5 ^ 2", calcerrors.KindInvalidOperator, calcerrors.StageDispatch},
		{"floor division", "5 // 2", calcerrors.KindInvalidOperator, calcerrors.StageDispatch},
		{"word operator", "5 plus 2", calcerrors.KindInvalidOperator, calcerrors.StageDispatch},
		{"divide by zero", "5 / 0", calcerrors.KindDivisionByZero, calcerrors.StageCompute},
		{"divide by negative zero", "5 / -0", calcerrors.KindDivisionByZero, calcerrors.StageCompute},
		{"modulo by zero", "5 % 0.0", calcerrors.KindDivisionByZero, calcerrors.StageCompute},
		{"zero to negative power", "0 ** -1", calcerrors.KindInvalidExpression, calcerrors.StageCompute},
		{"negative base fractional exponent", "-8 ** 0.5", calcerrors.KindInvalidExpression, calcerrors.StageCompute},
		{"power overflow", "10 ** 400", calcerrors.KindInvalidExpression, calcerrors.StageCompute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EvaluateTriple(tt.expr)
			require.False(t, r.OK())
			assert.Equal(t, tt.kind, r.Kind())
			assert.Equal(t, tt.stage, r.Err.Stage)
			assert.Equal(t, tt.kind.Sentinel(), r.String())
		})
	}
}

func TestEvaluateTriple_Causes(t *testing.T) {
	r := EvaluateTriple("1 2")
	var tokenErr *calcerrors.TokenCountError
	require.ErrorAs(t, r.Err, &tokenErr)
	assert.Equal(t, 2, tokenErr.Count)
	assert.Equal(t, 3, tokenErr.Want)

	r = EvaluateTriple("1 ^ 2")
	var opErr *calcerrors.OperatorError
	require.ErrorAs(t, r.Err, &opErr)
	assert.Equal(t, "^", opErr.Symbol)

	r = EvaluateTriple("x + 2")
	var parseErr *number.ParseError
	require.ErrorAs(t, r.Err, &parseErr)
	assert.ErrorIs(t, r.Err, number.ErrSyntax)
}

func TestEvaluateTriple_AlwaysRounded(t *testing.T) {
	exprs := []string{"1 / 7", "22 / 7", "-1 / 3", "0.1 + 0.2", "1.005 * 3", "3.14159 ** 2", "100 % 7.3"}
	for _, expr := range exprs {
		r := EvaluateTriple(expr)
		require.True(t, r.OK(), expr)
		v := r.Value.Float64()
		assert.InDelta(t, v, math.Round(v*100)/100, 1e-9, "%s = %v", expr, v)
	}
}

func TestEvaluateTriple_Idempotent(t *testing.T) {
	for _, expr := range []string{"10 / 4", "5 / 0", "abc", "5 ^ 2"} {
		assert.Equal(t, EvaluateTriple(expr), EvaluateTriple(expr), expr)
	}
}
