package suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"gopkg.in/yaml.v3"
)

// Load reads a suite file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
//
// A suite without a name is named after the file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}

	var s *Suite
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		s, err = FromYAML(data)
	case ".json":
		s, err = FromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported suite file extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// FromYAML parses a YAML suite.
func FromYAML(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	s.normalize()
	return &s, nil
}

// FromJSON parses a JSON suite. Input that is not valid JSON, such as an
// object literal with unquoted keys, single quotes or trailing commas, is
// repaired and parsed again.
//
// Numbers are kept as json.Number so integral operands stay integral.
func FromJSON(data []byte) (*Suite, error) {
	s, err := decodeJSON(data)
	if err == nil {
		return s, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return nil, fmt.Errorf("parse json: %w (repair failed: %v)", err, repairErr)
	}

	s, retryErr := decodeJSON([]byte(repaired))
	if retryErr != nil {
		return nil, fmt.Errorf("parse repaired json: %w", retryErr)
	}
	return s, nil
}

func decodeJSON(data []byte) (*Suite, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var s Suite
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	s.normalize()
	return &s, nil
}
