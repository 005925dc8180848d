package opcalc

import (
	calcerrors "github.com/randalmurphal/opcalc/pkg/opcalc/errors"
	"github.com/randalmurphal/opcalc/pkg/opcalc/number"
)

// Result is the outcome of one evaluation: either a number or a failure.
// Exactly one of Value and Err is meaningful; Err is nil on success.
type Result struct {
	Value number.Number
	Err   *calcerrors.Failure
}

func success(n number.Number) Result {
	return Result{Value: n}
}

func failure(kind calcerrors.Kind, stage calcerrors.Stage, cause error) Result {
	return Result{Err: calcerrors.New(kind, stage, cause)}
}

// OK reports whether the evaluation produced a number.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind returns the failure kind, or KindNone on success.
func (r Result) Kind() calcerrors.Kind {
	if r.Err == nil {
		return calcerrors.KindNone
	}
	return r.Err.Kind
}

// String returns the rendered number on success and the failure's
// sentinel text otherwise.
func (r Result) String() string {
	if r.Err != nil {
		return r.Err.Kind.Sentinel()
	}
	return r.Value.String()
}

// Unwrap splits the result into the usual Go value/error pair.
func (r Result) Unwrap() (number.Number, error) {
	if r.Err != nil {
		return number.Number{}, r.Err
	}
	return r.Value, nil
}
