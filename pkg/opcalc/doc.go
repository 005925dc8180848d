/*
Package opcalc provides two small, pure arithmetic evaluators that share the
operator vocabulary + - * / % **.

# Token-Triple Evaluator

EvaluateTriple reads a whitespace-separated "operand operator operand"
expression, evaluates it in floating point and rounds the result to two
decimal places:

	opcalc.EvaluateTriple("10 / 4").String() // "2.5"
	opcalc.EvaluateTriple("10 % 3").String() // "1.0"
	opcalc.EvaluateTriple("5 / 0").String()  // "Division by Zero"
	opcalc.EvaluateTriple("5 ^ 2").String()  // "Invalid Operator"

# Typed-Operand Calculator

EvaluateTyped infers for each operand whether it is integral or fractional
and chooses the result representation from those kinds and the operator:

	opcalc.EvaluateTyped("10", "+", "5").String()   // "15"
	opcalc.EvaluateTyped("10.5", "*", "2").String() // "21.0"
	opcalc.EvaluateTyped("10", "/", "2").String()   // "5.0"
	opcalc.EvaluateTyped("10", "/", "0").String()   // "Division Error"

# Results

Both evaluators return a Result. On success Result.Value holds a
number.Number; on failure Result.Err holds a *errors.Failure whose Kind
identifies the outcome. Result.String renders either the number or the
outcome's fixed sentinel text. Neither evaluator panics or returns a Go
error.

# Evaluator

The functions above are pure. Evaluator wraps them with structured logging
(slog), OpenTelemetry metrics and tracing, and an optional history store:

	store, _ := history.NewSQLiteStore("./opcalc.db")
	ev := opcalc.New(
	    opcalc.WithLogger(slog.Default()),
	    opcalc.WithMetrics(true),
	    opcalc.WithTracing(true),
	    opcalc.WithHistory(store),
	)
	r := ev.Typed(ctx, "8", "**", "2") // 64

Observability never changes a Result.

# Case Suites

Package suite runs files of expected input/output cases against an
Evaluator and reports which ones match.
*/
package opcalc
