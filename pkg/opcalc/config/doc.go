/*
Package config loads the runtime settings of the opcalc command.

# Sources

Settings are layered, later sources overriding earlier ones:

 1. Default()
 2. a YAML or JSON file (FromFile)
 3. OPCALC_* environment variables (FromEnv)

Load applies all three and validates the result:

	settings, err := config.Load("opcalc.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	logger := settings.NewLogger(os.Stderr)

A file only needs the keys it changes:

	log_level: debug
	history:
	  driver: sqlite
	  dsn: ./opcalc.db

Unknown keys are ignored, and a value of the wrong type keeps the previous
layer's value.

# .env Files

LoadDotEnv copies variables from .env files into the process environment
before FromEnv runs. Variables that are already set win.
*/
package config
