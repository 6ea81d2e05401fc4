// Package logger holds the process logger of the fpconv command.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// EnvLevel is the environment variable consulted when no level is given explicitly.
const EnvLevel = "FPCONV_LOG_LEVEL"

// Logger is the global logger instance.
var Logger *log.Logger

func init() {
	Logger = newLogger(os.Stderr, log.InfoLevel)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(level)
	return l
}

// Configure replaces Logger with a logger writing to w, or to stderr if w is nil.
// The level is taken from 'level', then from $FPCONV_LOG_LEVEL, and defaults to info.
// Returns an error for unknown level names.
func Configure(level string, w io.Writer) error {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}
	Logger = newLogger(w, lvl)
	return nil
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// NewComponentLogger returns a logger for a single component, like "verify".
// It shares the output and the level of Logger, and prefixes every message with the component name.
func NewComponentLogger(component string) *log.Logger {
	styles := log.DefaultStyles()
	styles.Keys["format"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styles.Keys["reason"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["format"] = lipgloss.NewStyle().Bold(true)

	l := Logger.WithPrefix(component)
	l.SetStyles(styles)
	return l
}
