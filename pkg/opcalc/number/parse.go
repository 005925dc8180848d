package number

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Sentinel errors for parsing.
var (
	// ErrSyntax indicates the text is not a number.
	ErrSyntax = errors.New("invalid number syntax")

	// ErrRange indicates the value does not fit the target representation.
	ErrRange = errors.New("value out of range")

	// ErrUnsupportedType indicates a Go value that has no numeric meaning.
	ErrUnsupportedType = errors.New("unsupported operand type")
)

// ParseError records a failed operand conversion.
type ParseError struct {
	// Text is the offending input as given.
	Text string

	// Err is ErrSyntax, ErrRange, or ErrUnsupportedType.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Text, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse interprets text as an integer first and as a float second.
// Surrounding whitespace is ignored and underscores may group digits
// ("1_000"). Integers have no size limit.
func Parse(text string) (Number, error) {
	s := strings.TrimSpace(text)

	if i, ok := parseInteger(s); ok {
		return Number{kind: Integral, i: i}, nil
	}

	f, err := ParseFloat(s)
	if err != nil {
		return Number{}, &ParseError{Text: text, Err: errors.Unwrap(err)}
	}
	return Float(f), nil
}

// parseInteger reads an optionally signed run of decimal digits.
func parseInteger(s string) (*big.Int, bool) {
	digits, ok := stripDigitSeparators(s)
	if !ok {
		return nil, false
	}
	body := strings.TrimLeft(digits, "+-")
	if body == "" || len(digits)-len(body) > 1 {
		return nil, false
	}
	for _, c := range body {
		if c < '0' || c > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(digits, 10)
}

// stripDigitSeparators removes underscores that sit between two digits.
// Any other underscore makes the text invalid.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseFloat interprets text as a decimal floating-point number.
// Surrounding whitespace is ignored; "inf", "infinity" and "nan" are accepted
// in any case, and underscores may group digits. Magnitudes beyond float64
// range parse to ±Inf.
func ParseFloat(text string) (float64, error) {
	s, ok := stripDigitSeparators(strings.TrimSpace(text))
	if !ok || s == "" || hasHexPrefix(s) {
		return 0, &ParseError{Text: text, Err: ErrSyntax}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, &ParseError{Text: text, Err: ErrSyntax}
	}
	return f, nil
}

// hasHexPrefix reports whether s is a Go hex float literal, which
// strconv accepts but a decimal calculator should not.
func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// FromValue converts a Go value to a Number, reading it as an integer
// whenever that is possible.
//
// Accepts:
//   - Number: used directly
//   - signed and unsigned integers, *big.Int: Integral
//   - float32, float64: Integral, truncated toward zero; NaN and
//     infinities stay Fractional
//   - string: interpreted with Parse
//   - json.Number: integer text is Integral, any other number is treated
//     like a float64
//
// Booleans, nil, and composite values are rejected with ErrUnsupportedType.
func FromValue(v any) (Number, error) {
	switch val := v.(type) {
	case Number:
		return val, nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint8:
		return Int(int64(val)), nil
	case uint16:
		return Int(int64(val)), nil
	case uint32:
		return Int(int64(val)), nil
	case uint64:
		return fromUint(val), nil
	case *big.Int:
		if val == nil {
			return Number{}, &ParseError{Text: "<nil>", Err: ErrUnsupportedType}
		}
		return BigInt(val), nil
	case float32:
		return fromFloat(float64(val)), nil
	case float64:
		return fromFloat(val), nil
	case string:
		return Parse(val)
	case json.Number:
		if i, ok := parseInteger(string(val)); ok {
			return Number{kind: Integral, i: i}, nil
		}
		f, err := ParseFloat(string(val))
		if err != nil {
			return Number{}, &ParseError{Text: string(val), Err: errors.Unwrap(err)}
		}
		return fromFloat(f), nil
	default:
		return Number{}, &ParseError{Text: fmt.Sprintf("%v", v), Err: ErrUnsupportedType}
	}
}

func fromUint(u uint64) Number {
	return Number{kind: Integral, i: new(big.Int).SetUint64(u)}
}

// fromFloat reads a numeric float operand as an integer, which succeeds for
// every finite value.
func fromFloat(f float64) Number {
	n, err := Float(f).Truncate()
	if err != nil {
		return Float(f)
	}
	return n
}
