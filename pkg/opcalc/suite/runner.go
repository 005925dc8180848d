package suite

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/opcalc/pkg/opcalc"
	calcerrors "github.com/randalmurphal/opcalc/pkg/opcalc/errors"
	"github.com/randalmurphal/opcalc/pkg/opcalc/observability"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Case   Case
	Actual string
	Kind   calcerrors.Kind
	Passed bool
}

// Report summarizes a suite run.
type Report struct {
	RunID    string
	Suite    string
	Results  []CaseResult
	Passed   int
	Total    int
	Duration time.Duration
}

// AllPassed reports whether every case passed.
func (r Report) AllPassed() bool {
	return r.Passed == r.Total
}

// Summary returns a one-line pass count, e.g. "basics: 5/7 passed".
func (r Report) Summary() string {
	return fmt.Sprintf("%s: %d/%d passed", r.Suite, r.Passed, r.Total)
}

// Visible returns the results with the input, expected and actual output
// of hidden cases removed. Names and pass/fail status are kept.
func (r Report) Visible() []CaseResult {
	out := make([]CaseResult, len(r.Results))
	for i, res := range r.Results {
		if res.Case.Hidden {
			res = CaseResult{
				Case:   Case{Name: res.Case.Name, Evaluator: res.Case.Evaluator, Hidden: true},
				Passed: res.Passed,
			}
		}
		out[i] = res
	}
	return out
}

// Run evaluates every case of s with ev and compares outputs with Match.
//
// Cases without an evaluator or name get the suite default and a
// positional name, then the suite is validated. Cancellation is checked between cases;
// a cancelled run returns the partial report and the context error.
//
// Example:
//
//	s, err := suite.Load("testdata/basics.yaml")
//	// handle err
//	report, err := suite.Run(ctx, opcalc.New(), s)
//	fmt.Println(report.Summary())
func Run(ctx context.Context, ev *opcalc.Evaluator, s *Suite) (report Report, runErr error) {
	report = Report{RunID: ev.RunID(), Suite: s.Name}

	s.normalize()
	if err := s.Validate(); err != nil {
		return report, fmt.Errorf("invalid suite: %w", err)
	}

	logger := ev.Logger()
	spans := ev.Spans()
	elapsed := observability.TimedOperation()

	ctx, span := spans.StartSuiteSpan(ctx, s.Name, ev.RunID())
	defer func() {
		spans.EndSpanWithError(span, runErr)
	}()

	observability.LogSuiteStart(logger, s.Name, len(s.Cases))

	report.Results = make([]CaseResult, 0, len(s.Cases))
	for _, c := range s.Cases {
		if err := ctx.Err(); err != nil {
			report.Duration = elapsed()
			return report, err
		}

		r := Evaluate(ctx, ev, c)
		res := CaseResult{
			Case:   c,
			Actual: r.String(),
			Kind:   r.Kind(),
		}
		res.Passed = Match(res.Actual, c.Expect)

		report.Results = append(report.Results, res)
		report.Total++
		if res.Passed {
			report.Passed++
		} else {
			observability.LogCaseMismatch(logger, c.Name, c.Expect, res.Actual)
			spans.AddSpanEvent(ctx, "case.mismatch", attribute.String("case", c.Name))
		}
	}

	report.Duration = elapsed()
	ev.Metrics().RecordSuiteRun(ctx, s.Name, report.Passed, report.Total, report.Duration)
	observability.LogSuiteComplete(logger, s.Name, report.Passed, report.Total,
		observability.Milliseconds(report.Duration))
	return report, nil
}

// Evaluate runs a single case with ev. The case must be valid.
func Evaluate(ctx context.Context, ev *opcalc.Evaluator, c Case) opcalc.Result {
	mode, _ := c.Mode()
	if mode == opcalc.ModeTriple {
		return ev.Triple(ctx, c.Input)
	}

	a, op, b, err := c.Operands()
	if err != nil {
		return opcalc.Result{Err: calcerrors.New(calcerrors.KindInvalidInput, calcerrors.StageParse, err)}
	}
	return ev.Typed(ctx, a, op, b)
}
