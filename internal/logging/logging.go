// Package logging builds the zap loggers used for diagnostics.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger at level writing to file, or to stderr when
// file is empty.
func New(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	out := "stderr"
	if file != "" {
		out = file
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{out},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

// ForTerminal is New for hosts that own the terminal: without a file it
// discards everything instead of corrupting the screen.
func ForTerminal(level, file string) (*zap.Logger, error) {
	if file == "" {
		return Nop(), nil
	}
	return New(level, file)
}

func Nop() *zap.Logger {
	return zap.NewNop()
}
