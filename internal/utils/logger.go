package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet logger whose level follows verbose mode
type Logger struct {
	mu      sync.RWMutex
	verbose bool
	out     *log.Logger
}

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// GetLogger returns the process-wide logger, writing to stderr until redirected
func GetLogger() *Logger {
	loggerOnce.Do(func() {
		globalLogger = &Logger{
			out: log.NewWithOptions(os.Stderr, log.Options{
				Prefix: "todocal",
				Level:  log.InfoLevel,
			}),
		}
	})
	return globalLogger
}

// SetVerbose switches between info and debug level. Verbose output also
// carries timestamps and call sites.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = verbose

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	l.out.SetLevel(level)
	l.out.SetReportTimestamp(verbose)
	l.out.SetReportCaller(verbose)
}

func (l *Logger) IsVerbose() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.verbose
}

// SetOutput redirects all log output, e.g. to a file while the TUI owns the terminal
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.SetOutput(w)
}

// With returns a child logger that adds keyvals to every entry
func (l *Logger) With(keyvals ...interface{}) *log.Logger {
	return l.out.With(keyvals...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.out.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.out.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.out.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.out.Errorf(format, args...)
}

func Debugf(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Infof(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

func Warnf(format string, args ...interface{}) {
	GetLogger().Warn(format, args...)
}

func Errorf(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}

// SetVerboseMode sets verbose mode on the global logger
func SetVerboseMode(verbose bool) {
	GetLogger().SetVerbose(verbose)
}

// LogToFile sends all log output to path (appending) and returns the file to close on exit
func LogToFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	GetLogger().SetOutput(f)
	return f, nil
}

// LogOperation runs fn between debug entries tagged with the operation
// name and, on completion, the elapsed time
func LogOperation(operation string, fn func() error) error {
	opLog := GetLogger().With("op", operation)
	opLog.Debug("operation started")

	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		opLog.Debug("operation failed", "elapsed", elapsed, "err", err)
	} else {
		opLog.Debug("operation completed", "elapsed", elapsed)
	}

	return err
}

func LogOperationf(format string, fn func() error, args ...interface{}) error {
	return LogOperation(fmt.Sprintf(format, args...), fn)
}
