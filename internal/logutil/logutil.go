// Package logutil configures the application's rotating file logger.
package logutil

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 7
)

// Init routes the default slog logger to a size-rotated log file. Terminal
// output is reserved for pterm and the TUI, so logs never write to stderr.
func Init(logDir string, debug bool) error {
	err := os.MkdirAll(logDir, os.ModePerm)
	if err != nil {
		return err
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "cogbench.log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))

	return nil
}
