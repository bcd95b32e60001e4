// Package logger builds the structured zap logger used across weave.
package logger

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Encodings accepted by New.
const (
	EncodingAuto    = "auto"
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// ParseLevel converts a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ResolveEncoding maps "auto" (or "") to console when stderr is a terminal and to
// json otherwise.
func ResolveEncoding(encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingAuto:
		if term.IsTerminal(int(os.Stderr.Fd())) {
			return EncodingConsole, nil
		}
		return EncodingJSON, nil
	case EncodingConsole:
		return EncodingConsole, nil
	case EncodingJSON:
		return EncodingJSON, nil
	default:
		return "", errors.Errorf("unknown log format %q", encoding)
	}
}

// New creates a logger writing to stderr.
//
// Arguments:
// - level: debug, info, warn or error.
// - encoding: auto, console or json.
//
// Returns:
// - The logger.
// - An error if the encoding is unknown or zap fails to build.
func New(level, encoding string) (*zap.Logger, error) {
	enc, err := ResolveEncoding(encoding)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if enc == EncodingConsole {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Encoding = enc
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return log, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
