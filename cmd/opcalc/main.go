// Command opcalc evaluates operator expressions, runs case suites and
// inspects evaluation history.
//
// Usage:
//
//	opcalc [global flags] triple <operand> <operator> <operand>
//	opcalc [global flags] typed <operand> <operator> <operand>
//	opcalc [global flags] run [-show-hidden] <suite-file>
//	opcalc [global flags] history [-run id] [-delete]
//
// Global flags:
//
//	-config path       YAML or JSON settings file
//	-env path          .env file to load (default ./.env)
//	-log-level level   debug, info, warn or error
//	-log-format fmt    text or json
//	-run-id id         run ID for recorded evaluations
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
