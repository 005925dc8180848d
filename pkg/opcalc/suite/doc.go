/*
Package suite runs files of expected evaluations against an opcalc.Evaluator.

A suite lists cases, each with an input, the expected output and an
optional hidden flag:

	name: expressions
	evaluator: triple
	cases:
	  - name: add
	    input: "10 + 5"
	    output: "15.0"
	  - name: caret
	    input: "5 ^ 2"
	    output: Invalid Operator
	    hidden: true

Typed cases take their operands from args, keeping operand types:

	{"evaluator": "typed", "args": [8, "**", 2], "output": "64"}

JSON suites may also be written as object literals (unquoted keys, single
quotes, trailing commas); they are repaired before decoding.

Outputs are compared with Match, so "15" satisfies "15.0". Report.Visible
hides the inputs and outputs of hidden cases.
*/
package suite
