// Package logger provides levelled logging for the assistant.
// Debug, Info, Warn and Section output is printed only in verbose mode
// (the --verbose flag); Error is always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func write(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { write(false, "[DEBUG] ", format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { write(false, "[INFO] ", format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { write(false, "[WARN] ", format, args...) }

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) { write(true, "[ERROR] ", format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) { write(false, "\n=== ", "%s ===", name) }

// Logger tags every line with a component name.
type Logger struct {
	component string
}

// With returns a logger whose lines are prefixed with [component].
func With(component string) Logger {
	return Logger{component: component}
}

func (l Logger) tag(level string) string {
	return level + "[" + l.component + "] "
}

// Debug prints a tagged debug message if verbose mode is enabled.
func (l Logger) Debug(format string, args ...any) { write(false, l.tag("[DEBUG] "), format, args...) }

// Info prints a tagged informational message if verbose mode is enabled.
func (l Logger) Info(format string, args ...any) { write(false, l.tag("[INFO] "), format, args...) }

// Warn prints a tagged warning if verbose mode is enabled.
func (l Logger) Warn(format string, args ...any) { write(false, l.tag("[WARN] "), format, args...) }

// Error prints a tagged error regardless of verbose mode.
func (l Logger) Error(format string, args ...any) { write(true, l.tag("[ERROR] "), format, args...) }
