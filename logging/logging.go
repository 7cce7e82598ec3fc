// Package logging sets up the process-wide structured logger and maps the
// §7 error taxonomy to log events and process exit codes.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/friedelschoen/riverwm/errs"
)

// New builds a console-writer zerolog.Logger, matching the ConsoleWriter
// setup used for interactive CLI output elsewhere in the pack.
func New() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()
}

// Fatal logs err at error severity with its taxonomy-derived exit code and
// terminates the process with that code. The entrypoint uses it for fatal
// errors seen outside event dispatch: startup failures and run-loop errors.
func Fatal(log zerolog.Logger, err error) {
	code := 1
	if ec, ok := err.(errs.ExitCoder); ok {
		code = ec.ExitCode()
	}
	log.Error().Err(err).Int("exit_code", code).Msg("fatal error, shutting down")
	os.Exit(code)
}

// NonFatal logs a StateError or UserError at warn severity and returns,
// matching §7: "non-fatal errors never leave the dispatcher."
func NonFatal(log zerolog.Logger, err error) {
	log.Warn().Err(err).Msg("ignoring non-fatal error")
}
