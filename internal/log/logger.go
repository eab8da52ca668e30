package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides centralized debug logging for the entire application
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	file   *os.File
}

var globalLogger *Logger

// init creates the global logger on stderr. Menus own stdout, so log lines
// never land between a prompt and its cue.
func init() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	globalLogger = &Logger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		level:  level,
		file:   os.Stderr,
	}
}

// SetFileOutput configures the logger to write to the specified file
func SetFileOutput(filename string) error {
	logger, err := NewLogger(filename)
	if err != nil {
		return err
	}

	// Keep whatever level was configured before the switch
	if globalLogger != nil {
		logger.level.Set(globalLogger.level.Level())
		if globalLogger.file != os.Stderr && globalLogger.file != nil {
			globalLogger.file.Close()
		}
	}

	globalLogger = logger
	return nil
}

// NewLogger creates a new debug logger that writes to the specified file
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	return &Logger{
		logger: slog.New(newHandler(file, level)),
		level:  level,
		file:   file,
	}, nil
}

// SetOutput redirects logging to an arbitrary writer (tests use io.Discard or a buffer).
func SetOutput(w io.Writer) {
	level := new(slog.LevelVar)
	if globalLogger != nil {
		level.Set(globalLogger.level.Level())
		if globalLogger.file != os.Stderr && globalLogger.file != nil {
			globalLogger.file.Close()
		}
	}
	globalLogger = &Logger{
		logger: slog.New(newHandler(w, level)),
		level:  level,
	}
}

func newHandler(w io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Format("2006/01/02 15:04:05.000000")),
				}
			}
			return a
		},
	})
}

// SetLevel accepts debug, info, warn or error.
func SetLevel(name string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	if globalLogger != nil {
		globalLogger.level.Set(level)
	}
	return nil
}

// Standard logging methods
func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Error(msg, args...)
	}
}

// Transcript records one line crossing a port. Direction is "<" for input and
// ">" for output, matching the script tooling.
func Transcript(direction, line string) {
	if globalLogger == nil {
		return
	}
	// Use %q to encode escapes, then strip the outer quotes
	encoded := fmt.Sprintf("%q", line)
	if len(encoded) >= 2 {
		encoded = encoded[1 : len(encoded)-1]
	}
	globalLogger.logger.Debug("transcript", "dir", direction, "data", encoded)
}

// Close closes the debug logger file
func Close() {
	if globalLogger != nil && globalLogger.file != nil && globalLogger.file != os.Stderr {
		globalLogger.file.Close()
	}
}
