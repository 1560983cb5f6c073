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

const defaultLogFile = "tmux-dojo.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	output       io.Writer
)

// entry opens the log destination for a single write. The file is reopened
// per entry so the log stays usable when it is rotated underneath us.
func entry() (*logrus.Logger, func()) {
	mu.Lock()
	path, w := logPath, output
	mu.Unlock()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)
	if w != nil {
		logger.SetOutput(w)
		return logger, func() {}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return nil, func() {}
	}
	logger.SetOutput(f)
	return logger, func() { f.Close() }
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	logger, done := entry()
	defer done()
	if logger == nil {
		return
	}
	logger.WithError(err).Error("error")
}

// Warn records a non-fatal problem with optional context fields.
func Warn(msg string, fields map[string]interface{}) {
	logger, done := entry()
	defer done()
	if logger == nil {
		return
	}
	logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are currently written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	logger, done := entry()
	defer done()
	if logger == nil {
		return
	}
	e := logger.WithField("event", event)
	if payload != nil {
		e = e.WithField("payload", payload)
	}
	e.Debug("trace")
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	output = nil
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput redirects every entry to w instead of the log file. Passing nil
// restores file output.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}
