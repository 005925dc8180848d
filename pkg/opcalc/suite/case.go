package suite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/opcalc/pkg/opcalc"
)

// Case is one expected evaluation.
//
// A triple case evaluates Input. A typed case evaluates Args, which holds
// exactly [operand, operator, operand]; when Args is empty, Input is split
// on whitespace into those three parts instead.
type Case struct {
	Name      string `yaml:"name" json:"name"`
	Evaluator string `yaml:"evaluator" json:"evaluator"`
	Input     string `yaml:"input" json:"input"`
	Args      []any  `yaml:"args" json:"args"`
	Expect    string `yaml:"output" json:"output"`
	Hidden    bool   `yaml:"hidden" json:"hidden"`
}

// Suite is a named list of cases.
type Suite struct {
	Name string `yaml:"name" json:"name"`

	// Evaluator is the default for cases that do not name one.
	Evaluator string `yaml:"evaluator" json:"evaluator"`

	Cases []Case `yaml:"cases" json:"cases"`
}

// Mode returns the evaluator the case runs under.
func (c Case) Mode() (opcalc.Mode, bool) {
	return opcalc.ParseMode(c.Evaluator)
}

// Operands returns the typed-case operands.
func (c Case) Operands() (a any, op string, b any, err error) {
	if len(c.Args) > 0 {
		if len(c.Args) != 3 {
			return nil, "", nil, fmt.Errorf("args: expected 3 values, got %d", len(c.Args))
		}
		op, ok := c.Args[1].(string)
		if !ok {
			return nil, "", nil, fmt.Errorf("args: operator must be a string, got %T", c.Args[1])
		}
		return c.Args[0], op, c.Args[2], nil
	}

	fields := strings.Fields(c.Input)
	if len(fields) != 3 {
		return nil, "", nil, fmt.Errorf("input: expected 3 fields, got %d", len(fields))
	}
	return fields[0], fields[1], fields[2], nil
}

// normalize fills in defaults: case evaluators from the suite and case
// names from their position.
func (s *Suite) normalize() {
	for i := range s.Cases {
		c := &s.Cases[i]
		if c.Evaluator == "" {
			c.Evaluator = s.Evaluator
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
	}
}

// Validate checks every case and reports all problems together.
func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("suite %q has no cases", s.Name)
	}

	var errs []error
	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		prefix := fmt.Sprintf("case %d (%s)", i+1, c.Name)

		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate name", prefix))
		}
		seen[c.Name] = true

		mode, ok := c.Mode()
		if !ok {
			errs = append(errs, fmt.Errorf("%s: unknown evaluator %q", prefix, c.Evaluator))
			continue
		}
		if mode == opcalc.ModeTyped {
			if _, _, _, err := c.Operands(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
			}
		} else if len(c.Args) > 0 {
			errs = append(errs, fmt.Errorf("%s: args are only used by typed cases", prefix))
		}
		if strings.TrimSpace(c.Expect) == "" {
			errs = append(errs, fmt.Errorf("%s: output required", prefix))
		}
	}
	return errors.Join(errs...)
}
