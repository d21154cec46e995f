// Package logger provides the shared logger used for parser
// diagnostics. Parsing only ever emits warnings through it: conditions
// that are recoverable but change the parsed result, like a declared
// model length that disagrees with the number of parsed columns.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the package-global logger instance.
var Logger *log.Logger

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// SetLevel adjusts the verbosity of parser diagnostics. Callers that
// process large batches may want log.ErrorLevel to silence the
// per-file warnings.
func SetLevel(level log.Level) {
	Logger.SetLevel(level)
}
