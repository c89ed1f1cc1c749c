//go:build !baremetal

package klog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true}).With().Timestamp().Logger()

// SetOutput redirects log output, e.g. to a SerialWriter in tests that want
// to assert on exactly what the kernel core would have written to port
// 0x3F8 in the baremetal build.
func SetOutput(w io.Writer) {
	logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
}

// SetLevel parses level (e.g. "debug", "info", "warn") with zerolog's own
// parser and applies it globally. An unrecognized level is left
// unchanged and the parse error returned, for cmd/kernelsim's flag
// validation.
func SetLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

// Info logs an informational line (IRQ routing, scheduler transitions).
func Info(msg string, args ...any) {
	logger.Info().Msg(format(msg, args...))
}

// Errorf logs a recoverable-but-worth-noting condition.
func Errorf(msg string, args ...any) {
	logger.Error().Msg(format(msg, args...))
}

// Fatal logs msg and panics, so `go test` surfaces the invariant violation
// as a failing test instead of hanging. It deliberately does not use
// zerolog's own Fatal level, which calls os.Exit and would kill the test
// binary before the panic could be observed.
func Fatal(msg string, args ...any) {
	full := format(msg, args...)
	logger.Error().Msg(full)
	panic(full)
}
