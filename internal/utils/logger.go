package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger constructs a zap logger writing human-readable console
// output to stderr. When logFilePath is not empty the same output is also
// written to that file. The log file is truncated first so each run leaves a
// fresh log, matching the lifecycle of the combined document.
func NewApplicationLogger(logFilePath string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stderr"}
	if logFilePath != "" {
		fileHandle, truncateError := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if truncateError != nil {
			return nil, fmt.Errorf("prepare log file %s: %w", logFilePath, truncateError)
		}
		if closeError := fileHandle.Close(); closeError != nil {
			return nil, fmt.Errorf("prepare log file %s: %w", logFilePath, closeError)
		}
		config.OutputPaths = append(config.OutputPaths, logFilePath)
	}
	return config.Build()
}
