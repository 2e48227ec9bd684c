// Package logging builds the logr loggers used by the benchmark tools.
package logging

import (
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logger.V.
const (
	DEFAULT = 2
	VERBOSE = 3
	DEBUG   = 4
	TRACE   = 5
)

// atomicLevel is shared by every logger built here so SetVerbosity takes
// effect on loggers that were already handed out.
var atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// New builds a zap-backed logger. verbosity enables V(n) for n <= verbosity.
func New(verbosity int, development bool) (logr.Logger, error) {
	SetVerbosity(verbosity)

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = atomicLevel

	z, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(z), nil
}

// SetVerbosity adjusts the level of all loggers built by New.
func SetVerbosity(verbosity int) {
	atomicLevel.SetLevel(zapcore.Level(-1 * verbosity))
}

// NewTestLogger creates a development logger with TRACE enabled.
func NewTestLogger() logr.Logger {
	z := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.Level(-1*TRACE)),
	), zap.AddCaller())
	return zapr.NewLogger(z)
}

// Fatal calls logger.Error followed by os.Exit(1).
func Fatal(logger logr.Logger, err error, msg string, keysAndValues ...any) {
	logger.Error(err, msg, keysAndValues...)
	os.Exit(1)
}
