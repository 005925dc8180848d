package config

// values wraps a decoded YAML or JSON document for lenient extraction.
// Accessors return the default when the key is missing or has the wrong type.
type values struct {
	data map[string]any
}

func newValues(data map[string]any) values {
	if data == nil {
		data = make(map[string]any)
	}
	return values{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (v values) String(key, defaultVal string) string {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (v values) Bool(key string, defaultVal bool) bool {
	raw, ok := v.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := raw.(bool); ok {
		return b
	}
	return defaultVal
}

// Section returns the nested mapping under key. A missing or non-mapping
// value yields an empty section.
func (v values) Section(key string) values {
	raw, ok := v.data[key]
	if !ok {
		return newValues(nil)
	}
	if m, ok := raw.(map[string]any); ok {
		return newValues(m)
	}
	return newValues(nil)
}
