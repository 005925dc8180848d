package number

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind Kind
		want     float64
	}{
		{"integer", "10", Integral, 10},
		{"negative integer", "-42", Integral, -42},
		{"explicit plus", "+7", Integral, 7},
		{"surrounding whitespace", "  15 ", Integral, 15},
		{"leading zeros stay decimal", "010", Integral, 10},
		{"decimal", "10.5", Fractional, 10.5},
		{"whole decimal stays fractional", "2.0", Fractional, 2},
		{"exponent", "1e3", Fractional, 1000},
		{"leading dot", ".5", Fractional, 0.5},
		{"grouped integer", "1_000", Integral, 1000},
		{"grouped signed integer", "-1_000_000", Integral, -1000000},
		{"grouped decimal", "1_000.5", Fractional, 1000.5},
		{"grouped exponent", "1e1_0", Fractional, 1e10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, n.Kind())
			assert.Equal(t, tt.want, n.Float64())
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"word", "abc", ErrSyntax},
		{"empty", "", ErrSyntax},
		{"blank", "   ", ErrSyntax},
		{"hex float", "0x1p3", ErrSyntax},
		{"trailing garbage", "12abc", ErrSyntax},
		{"double sign", "+-5", ErrSyntax},
		{"doubled underscore", "1__000", ErrSyntax},
		{"leading underscore", "_1000", ErrSyntax},
		{"trailing underscore", "1000_", ErrSyntax},
		{"underscore before point", "1_.5", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.text, pe.Text)
		})
	}
}

func TestParseFloat(t *testing.T) {
	t.Run("special values", func(t *testing.T) {
		f, err := ParseFloat("inf")
		require.NoError(t, err)
		assert.True(t, math.IsInf(f, 1))

		f, err = ParseFloat("-Infinity")
		require.NoError(t, err)
		assert.True(t, math.IsInf(f, -1))

		f, err = ParseFloat("NaN")
		require.NoError(t, err)
		assert.True(t, math.IsNaN(f))
	})

	t.Run("out of range becomes infinity", func(t *testing.T) {
		f, err := ParseFloat("1e400")
		require.NoError(t, err)
		assert.True(t, math.IsInf(f, 1))
	})

	t.Run("integer text parses as float", func(t *testing.T) {
		f, err := ParseFloat("5")
		require.NoError(t, err)
		assert.Equal(t, 5.0, f)
	})

	t.Run("rejects words", func(t *testing.T) {
		_, err := ParseFloat("five")
		assert.ErrorIs(t, err, ErrSyntax)
	})
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantKind Kind
		want     float64
	}{
		{"int", 10, Integral, 10},
		{"int8", int8(-3), Integral, -3},
		{"int64", int64(1 << 40), Integral, 1 << 40},
		{"uint16", uint16(9), Integral, 9},
		{"float32 truncates", float32(2.5), Integral, 2},
		{"float64 whole", 10.0, Integral, 10},
		{"float64 truncates toward zero", -2.9, Integral, -2},
		{"float64 nan stays fractional", math.NaN(), Fractional, math.NaN()},
		{"float64 infinity stays fractional", math.Inf(1), Fractional, math.Inf(1)},
		{"string integer", "5", Integral, 5},
		{"string decimal", "10.5", Fractional, 10.5},
		{"json number", json.Number("3"), Integral, 3},
		{"json number fraction truncates", json.Number("2.5"), Integral, 2},
		{"json number exponent", json.Number("1e2"), Integral, 100},
		{"big int", big.NewInt(-12), Integral, -12},
		{"number passthrough", Float(1.25), Fractional, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, n.Kind())
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(n.Float64()))
				return
			}
			assert.Equal(t, tt.want, n.Float64())
		})
	}
}

func TestFromValue_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr error
	}{
		{"bool", true, ErrUnsupportedType},
		{"nil", nil, ErrUnsupportedType},
		{"slice", []int{1, 2}, ErrUnsupportedType},
		{"nil big int", (*big.Int)(nil), ErrUnsupportedType},
		{"bad string", "abc", ErrSyntax},
		{"bad json number", json.Number("1x"), ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValue(tt.value)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNumber_String(t *testing.T) {
	tests := []struct {
		name string
		n    Number
		want string
	}{
		{"integral", Int(15), "15"},
		{"negative integral", Int(-7), "-7"},
		{"whole fractional", Float(15), "15.0"},
		{"fractional", Float(3.5), "3.5"},
		{"negative zero", Float(math.Copysign(0, -1)), "-0.0"},
		{"small fixed", Float(0.0001), "0.0001"},
		{"small exponent", Float(0.000015), "1.5e-05"},
		{"large fixed", Float(1e15), "1000000000000000.0"},
		{"large exponent", Float(1e16), "1e+16"},
		{"positive infinity", Float(math.Inf(1)), "inf"},
		{"negative infinity", Float(math.Inf(-1)), "-inf"},
		{"nan", Float(math.NaN()), "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.String())
		})
	}
}

func TestNumber_Round(t *testing.T) {
	tests := []struct {
		name   string
		in     float64
		places int
		want   float64
	}{
		{"already short", 15, 2, 15},
		{"thirds", 10.0 / 3, 2, 3.33},
		{"binary below half", 2.675, 2, 2.67},
		{"exact tie to even", 0.125, 2, 0.12},
		{"negative", -1.005, 2, -1},
		{"zero places", 2.5, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Float(tt.in).Round(tt.places)
			assert.Equal(t, Fractional, got.Kind())
			assert.Equal(t, tt.want, got.Float64())
		})
	}

	t.Run("integral unchanged", func(t *testing.T) {
		assert.Equal(t, Int(7), Int(7).Round(2))
	})

	t.Run("infinity unchanged", func(t *testing.T) {
		assert.True(t, math.IsInf(Float(math.Inf(1)).Round(2).Float64(), 1))
	})
}

func TestNumber_Truncate(t *testing.T) {
	n, err := Float(-2.9).Truncate()
	require.NoError(t, err)
	assert.True(t, Int(-2).Equal(n))

	n, err = Int(4).Truncate()
	require.NoError(t, err)
	assert.True(t, Int(4).Equal(n))

	n, err = Float(1e19).Truncate()
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", n.String())

	_, err = Float(math.Inf(1)).Truncate()
	assert.ErrorIs(t, err, ErrRange)

	_, err = Float(math.NaN()).Truncate()
	assert.ErrorIs(t, err, ErrRange)
}

func TestNumber_BigIntegers(t *testing.T) {
	n, err := Parse("99999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, Integral, n.Kind())
	assert.Equal(t, "99999999999999999999", n.String())

	_, ok := n.Int64()
	assert.False(t, ok)

	n, err = FromValue(uint64(math.MaxUint64))
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", n.String())

	huge, err := Parse("1" + strings.Repeat("0", 400))
	require.NoError(t, err)
	assert.True(t, math.IsInf(huge.Float64(), 1))
	_, err = huge.ToFloat64()
	assert.ErrorIs(t, err, ErrRange)

	f, err := Int(3).ToFloat64()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)
}

func TestNumber_BigIntCopies(t *testing.T) {
	src := big.NewInt(5)
	n := BigInt(src)
	src.SetInt64(6)
	assert.Equal(t, "5", n.String())

	out := n.Int()
	out.SetInt64(7)
	assert.Equal(t, "5", n.String())
}

func TestNumber_Accessors(t *testing.T) {
	var zero Number
	assert.True(t, zero.IsIntegral())
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0", zero.String())
	assert.True(t, zero.Equal(Int(0)))

	assert.True(t, Float(math.Copysign(0, -1)).IsZero())
	assert.False(t, Float(0.1).IsZero())

	i, ok := Float(3.99).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(3), i)
	_, ok = Float(math.NaN()).Int64()
	assert.False(t, ok)
	assert.Nil(t, Float(math.Inf(-1)).Int())

	assert.True(t, Int(2).Equal(Int(2)))
	assert.False(t, Int(2).Equal(Float(2)))
	assert.Equal(t, "fractional", Fractional.String())
}
