package suite

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Match reports whether an actual output satisfies an expected one.
//
// Outputs match when, after trimming surrounding whitespace, they are
// equal, equal once one surrounding quote character is stripped from each
// end, or decode to the same JSON value once tuple parentheses become
// brackets and single quotes become double quotes. The last rule makes
// "15" match "15.0" and "(1, 2)" match "[1,2]".
func Match(actual, expected string) bool {
	actual = strings.TrimSpace(actual)
	expected = strings.TrimSpace(expected)

	if actual == expected {
		return true
	}

	if unquote(actual) == unquote(expected) {
		return true
	}

	a, ok := normalizeJSON(actual)
	if !ok {
		return false
	}
	e, ok := normalizeJSON(expected)
	if !ok {
		return false
	}
	return bytes.Equal(a, e)
}

// unquote strips one leading and one trailing quote character, each
// independently.
func unquote(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}

var literalReplacer = strings.NewReplacer("(", "[", ")", "]", "'", `"`)

// normalizeJSON decodes s as a JSON value after literal normalization and
// re-encodes it canonically.
func normalizeJSON(s string) ([]byte, bool) {
	var v any
	if err := json.Unmarshal([]byte(literalReplacer.Replace(s)), &v); err != nil {
		return nil, false
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return out, true
}
