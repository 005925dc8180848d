package opcalc

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calcerrors "github.com/randalmurphal/opcalc/pkg/opcalc/errors"
	"github.com/randalmurphal/opcalc/pkg/opcalc/number"
	"github.com/randalmurphal/opcalc/pkg/opcalc/operator"
)

func TestEvaluateTyped(t *testing.T) {
	tests := []struct {
		name string
		a    any
		op   string
		b    any
		kind number.Kind
		want string
	}{
		{"integral add", "10", "+", "5", number.Integral, "15"},
		{"integral subtract", "3", "-", "10", number.Integral, "-7"},
		{"fractional multiply", "10.5", "*", "2", number.Fractional, "21.0"},
		{"division is fractional", "10", "/", "2", number.Fractional, "5.0"},
		{"fractional division", "7", "/", "2", number.Fractional, "3.5"},
		{"integral power", "8", "**", "2", number.Integral, "64"},
		{"integral modulo", "10", "%", "3", number.Integral, "1"},
		{"floor modulo negative dividend", "-7", "%", "3", number.Integral, "2"},
		{"floor modulo negative divisor", "7", "%", "-3", number.Integral, "-2"},
		{"fractional modulo", "7.5", "%", "2", number.Fractional, "1.5"},
		{"negative exponent truncates", "2", "**", "-1", number.Integral, "0"},
		{"negative base negative exponent", "-2", "**", "-1", number.Integral, "0"},
		{"fractional power", "2.0", "**", "3", number.Fractional, "8.0"},
		{"exponent notation is fractional", "1e2", "+", "1", number.Fractional, "101.0"},
		{"whitespace trimmed", " 10 ", "+", "5", number.Integral, "15"},
		{"go ints", 10, "-", 3, number.Integral, "7"},
		{"go float truncated to integral", 10.5, "*", 2, number.Integral, "20"},
		{"go whole float is integral", 3.0, "+", 4, number.Integral, "7"},
		{"go negative float truncates toward zero", -2.9, "+", 0, number.Integral, "-2"},
		{"go float division", 10.5, "/", 2, number.Fractional, "5.0"},
		{"go nan stays fractional", math.NaN(), "+", 1, number.Fractional, "nan"},
		{"go infinity stays fractional", math.Inf(1), "-", 1, number.Fractional, "inf"},
		{"json number", json.Number("4"), "*", json.Number("2.5"), number.Integral, "8"},
		{"number values", number.Int(6), "/", number.Int(4), number.Fractional, "1.5"},
		{"fractional number value", number.Float(2.5), "+", 1, number.Fractional, "3.5"},
		{"grouped digits", "1_000", "+", "1", number.Integral, "1001"},
		{"grouped decimal", "1_000.5", "+", "1", number.Fractional, "1001.5"},
		{"large integral", "9223372036854775806", "+", "1", number.Integral, "9223372036854775807"},
		{"integer text beyond int64", "99999999999999999999", "+", "1", number.Integral, "100000000000000000000"},
		{"add past int64", "9223372036854775807", "+", "1", number.Integral, "9223372036854775808"},
		{"power beyond int64", "2", "**", "64", number.Integral, "18446744073709551616"},
		{"large power", "10", "**", "30", number.Integral, "1000000000000000000000000000000"},
		{"large integral division", "1" + strings.Repeat("0", 400), "/", "1" + strings.Repeat("0", 399), number.Fractional, "10.0"},
		{"go uint64 max", uint64(math.MaxUint64), "+", 1, number.Integral, "18446744073709551616"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EvaluateTyped(tt.a, tt.op, tt.b)
			require.True(t, r.OK(), "unexpected failure: %v", r.Err)
			assert.Equal(t, tt.kind, r.Value.Kind())
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestEvaluateTyped_Failures(t *testing.T) {
	tests := []struct {
		name  string
		a     any
		op    string
		b     any
		kind  calcerrors.Kind
		stage calcerrors.Stage
	}{
		{"non-numeric left", "abc", "+", "5", calcerrors.KindInvalidInput, calcerrors.StageParse},
		{"non-numeric right", "5", "+", "abc", calcerrors.KindInvalidInput, calcerrors.StageParse},
		{"empty operand", "", "+", "5", calcerrors.KindInvalidInput, calcerrors.StageParse},
		{"bool operand", true, "+", 1, calcerrors.KindInvalidInput, calcerrors.StageParse},
		{"nil operand", nil, "+", 1, calcerrors.KindInvalidInput, calcerrors.StageParse},
		{"misplaced underscore", "1__0", "+", "1", calcerrors.KindInvalidInput, calcerrors.StageParse},
		{"unknown operator", "10", "^", "2", calcerrors.KindInvalidInput, calcerrors.StageDispatch},
		{"operator with spaces", "10", " + ", "2", calcerrors.KindInvalidInput, calcerrors.StageDispatch},
		{"divide by integral zero", "10", "/", "0", calcerrors.KindDivisionError, calcerrors.StageCompute},
		{"divide by fractional zero", "10", "/", "0.0", calcerrors.KindDivisionError, calcerrors.StageCompute},
		{"divide by negative zero", "10.5", "/", "-0.0", calcerrors.KindDivisionError, calcerrors.StageCompute},
		{"integral modulo by zero", "10", "%", "0", calcerrors.KindInvalidInput, calcerrors.StageCompute},
		{"fractional modulo by zero", "10.5", "%", "0", calcerrors.KindInvalidInput, calcerrors.StageCompute},
		{"integral power too large", "2", "**", "10000000", calcerrors.KindInvalidInput, calcerrors.StageCompute},
		{"huge integer mixed with float", "1" + strings.Repeat("0", 400), "+", "1.5", calcerrors.KindInvalidInput, calcerrors.StageCompute},
		{"integral quotient beyond float", "1" + strings.Repeat("0", 400), "/", "3", calcerrors.KindInvalidInput, calcerrors.StageCompute},
		{"float power overflow", "10.0", "**", "400", calcerrors.KindInvalidInput, calcerrors.StageCompute},
		{"zero to negative power", "0", "**", "-1", calcerrors.KindInvalidInput, calcerrors.StageCompute},
		{"negative base fractional exponent", "-8", "**", "0.5", calcerrors.KindInvalidInput, calcerrors.StageCompute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EvaluateTyped(tt.a, tt.op, tt.b)
			require.False(t, r.OK())
			assert.Equal(t, tt.kind, r.Kind())
			assert.Equal(t, tt.stage, r.Err.Stage)
			assert.Equal(t, tt.kind.Sentinel(), r.String())
		})
	}
}

func TestEvaluateTyped_Causes(t *testing.T) {
	r := EvaluateTyped("1"+strings.Repeat("0", 400), "+", "1.5")
	assert.ErrorIs(t, r.Err, number.ErrRange)

	r = EvaluateTyped("10", "%", "0")
	assert.ErrorIs(t, r.Err, operator.ErrZeroDivisor)

	r = EvaluateTyped("2", "**", "10000000")
	var overflow *operator.OverflowError
	assert.ErrorAs(t, r.Err, &overflow)

	r = EvaluateTyped("1", "//", "2")
	var opErr *calcerrors.OperatorError
	require.ErrorAs(t, r.Err, &opErr)
	assert.Equal(t, "//", opErr.Symbol)
}

// The representation of a result depends on the operand kinds and the
// operator only, never on the magnitude of the value.
func TestEvaluateTyped_KindIndependentOfValue(t *testing.T) {
	pairs := [][2]string{{"1", "1"}, {"1000000", "3"}, {"-5", "7"}, {"0", "9"}, {"99999999999999999999", "4"}}
	for _, p := range pairs {
		for _, op := range operator.Symbols() {
			r := EvaluateTyped(p[0], op, p[1])
			require.True(t, r.OK(), "%s %s %s: %v", p[0], op, p[1], r.Err)
			if op == "/" {
				assert.Equal(t, number.Fractional, r.Value.Kind(), "%s %s %s", p[0], op, p[1])
			} else {
				assert.Equal(t, number.Integral, r.Value.Kind(), "%s %s %s", p[0], op, p[1])
			}
		}
	}
}

func TestEvaluateTyped_Idempotent(t *testing.T) {
	for _, args := range [][3]string{{"10", "+", "5"}, {"10", "/", "0"}, {"abc", "+", "1"}} {
		assert.Equal(t,
			EvaluateTyped(args[0], args[1], args[2]),
			EvaluateTyped(args[0], args[1], args[2]),
		)
	}
}
