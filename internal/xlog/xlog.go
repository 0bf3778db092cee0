// Package xlog builds the process-wide structured logger for leafbase.
// It writes to stderr so it never collides with the REPL's byte-exact
// stdout protocol.
package xlog

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger writing JSON lines to stderr at the given level.
// An unrecognized level falls back to info rather than failing the whole
// process over a logging flag typo.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(level)); err != nil {
		zl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(zl)

	return cfg.Build()
}

// NewSession returns a child logger tagged with a freshly minted session
// ID, so every line a single `db > ` invocation logs can be grepped out
// of a shared log stream.
func NewSession(base *zap.Logger) (*zap.Logger, string) {
	sessionID := uuid.NewString()
	return base.With(zap.String("session_id", sessionID)), sessionID
}
