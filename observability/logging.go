package observability

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger sets up structured JSON logging with rotation and installs the
// logger as the slog default. Logging goes only to the file, keeping the
// interactive terminal clean.
func InitLogger(logDir string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	handler := slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "tutor.log"),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}, &slog.HandlerOptions{Level: level})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
