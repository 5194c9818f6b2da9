// Package logging provides the shared zap logger. Diagnostics go to stderr so
// command output and the stdio MCP transport stay clean.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// Initialize sets up the global logger at the given level
func Initialize(level zapcore.Level) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	Logger = zap.New(core)
}

// Sync flushes the logger
func Sync() {
	_ = Logger.Sync()
}
