package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

var (
	logFile *os.File
	logPath string

	setupOnce sync.Once
	writer    io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	opened atomic.Bool
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. It returns false, and changes
// nothing, once the log writer has been opened.
func SetLogPath(path string) bool {
	if opened.Load() {
		return false
	}
	logPath = path
	return true
}

func setup() {
	setupOnce.Do(func() {
		opened.Store(true)
		writer = os.Stdout

		if logPath == "" {
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return
		}

		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, stay console-only
			return
		}

		writer = io.MultiWriter(os.Stdout, logFile)
	})
}

func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}

		setup()

		handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler).With(slog.String("component", "routecoordinator"))
	})
	return logger
}

// NewLogger returns a logger on the shared writer with its own level, so
// changing it leaves the package logger and other loggers alone.
func NewLogger(level slog.Level) *slog.Logger {
	setup()

	lv := &slog.LevelVar{}
	lv.Set(level)
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: lv})
	return slog.New(handler).With(slog.String("component", "routecoordinator"))
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level.
// Anything else is info.
func ParseLevel(rawLevel string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetRawLogLevel(rawLevel string) {
	SetLogLevel(ParseLevel(rawLevel))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
