package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogName = "filectrl.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = DefaultPath()
	logger       = newLogger(io.Discard)
	logFile      *os.File
)

// DefaultPath is where logs go when no path is configured. The terminal is
// owned by the UI, so logs never go to stderr.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), defaultLogName)
}

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return l
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		path = DefaultPath()
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path
	logger.SetOutput(f)
}

// Path returns the active log file path.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return
	}
	logger.SetOutput(io.Discard)
	logFile.Close()
	logFile = nil
}

// Error writes err to the log.
func Error(err error) {
	if err == nil {
		return
	}
	logger.WithError(err).Error("error")
}

// Warn writes a formatted warning to the log.
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := logger.WithField("event", event)
	if payload != nil {
		entry = entry.WithField("payload", payload)
	}
	entry.Debug("trace")
}
