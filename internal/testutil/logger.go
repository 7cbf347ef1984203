// Package testutil holds helpers shared by package tests.
package testutil

import (
	"io"
	"log/slog"

	"github.com/dtroode/blackjack-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards records. It logs at debug
// level so debug-only attribute building still runs under test.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithFormat(int(slog.LevelDebug), "text", io.Discard)
}
