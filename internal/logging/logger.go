// Package logging wires up the process-wide zap logger used across the
// module's non-core packages (lru, freelist, subscriber, cmd/bench).
// Core package list never logs: a lock-free primitive has no business
// owning a logging dependency.
package logging

import (
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	l   = newLogger()
	s   = l.Sugar()
)

func newLogger() *zap.Logger {
	out := zapcore.Lock(os.Stderr)

	var enc zapcore.Encoder
	if ok, _ := strconv.ParseBool(os.Getenv("LOCKFREELIST_JSONLOG")); ok {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zap.New(zapcore.NewCore(enc, out, lvl))
}

// L returns the shared structured logger.
func L() *zap.Logger {
	return l
}

// S returns the shared sugared logger, for call sites that favor
// printf-style formatting over structured fields.
func S() *zap.SugaredLogger {
	return s
}

// SetLevel adjusts the minimum level logged from this point on.
func SetLevel(level zapcore.Level) {
	lvl.SetLevel(level)
}

// Level returns the minimum level currently logged.
func Level() zapcore.Level {
	return lvl.Level()
}
