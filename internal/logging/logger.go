// Package logging provides categorized file-based debug logging for
// chatpolish. Each category writes to its own file under the configured
// logs directory. When debug mode is off every call is a silent no-op,
// so hook handlers can log freely without a cost in production.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category.
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config load
	CategoryHooks    Category = "hooks"    // Hook invocations and routing
	CategoryMarks    Category = "marks"    // Marker store and reaper
	CategoryPolish   Category = "polish"   // Rewrite decisions and outcomes
	CategoryProvider Category = "provider" // LLM provider calls
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Options controls logger behavior.
type Options struct {
	DebugMode bool
	Level     string // debug, info, warn, error
}

// Logger wraps a standard logger bound to one category file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	debugMode bool
	logLevel  = LevelInfo
	optsMu    sync.RWMutex
)

// Initialize sets up the logging directory. A no-op when debug mode is
// disabled. Should be called once at startup.
func Initialize(dir string, opts Options) error {
	optsMu.Lock()
	debugMode = opts.DebugMode
	switch opts.Level {
	case "debug":
		logLevel = LevelDebug
	case "info", "":
		logLevel = LevelInfo
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
	optsMu.Unlock()

	if !opts.DebugMode {
		return nil
	}
	if dir == "" {
		return fmt.Errorf("logs directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	logsDir = dir

	boot := Get(CategoryBoot)
	boot.Info("=== chatpolish logging initialized ===")
	boot.Info("Logs directory: %s", dir)
	boot.Info("Log level: %s", opts.Level)
	return nil
}

// IsDebugMode returns whether debug logging is enabled.
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return debugMode
}

// Get returns (or creates) the logger for a category. Returns a no-op
// logger when debug mode is disabled or the log file cannot be opened.
func Get(category Category) *Logger {
	if !IsDebugMode() || logsDir == "" {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix keeps rotation a matter of deleting old files.
	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files. Call at shutdown.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience helpers. No-ops when debug mode is off.

// Boot logs to the boot category.
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// BootError logs an error to the boot category.
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Error(format, args...) }

// Hooks logs to the hooks category.
func Hooks(format string, args ...interface{}) { Get(CategoryHooks).Info(format, args...) }

// HooksDebug logs debug to the hooks category.
func HooksDebug(format string, args ...interface{}) { Get(CategoryHooks).Debug(format, args...) }

// Marks logs to the marks category.
func Marks(format string, args ...interface{}) { Get(CategoryMarks).Info(format, args...) }

// MarksDebug logs debug to the marks category.
func MarksDebug(format string, args ...interface{}) { Get(CategoryMarks).Debug(format, args...) }

// Polish logs to the polish category.
func Polish(format string, args ...interface{}) { Get(CategoryPolish).Info(format, args...) }

// PolishDebug logs debug to the polish category.
func PolishDebug(format string, args ...interface{}) { Get(CategoryPolish).Debug(format, args...) }

// PolishWarn logs a warning to the polish category.
func PolishWarn(format string, args ...interface{}) { Get(CategoryPolish).Warn(format, args...) }

// PolishError logs an error to the polish category.
func PolishError(format string, args ...interface{}) { Get(CategoryPolish).Error(format, args...) }

// Provider logs to the provider category.
func Provider(format string, args ...interface{}) { Get(CategoryProvider).Info(format, args...) }

// ProviderDebug logs debug to the provider category.
func ProviderDebug(format string, args ...interface{}) { Get(CategoryProvider).Debug(format, args...) }

// ProviderWarn logs a warning to the provider category.
func ProviderWarn(format string, args ...interface{}) { Get(CategoryProvider).Warn(format, args...) }

// ProviderError logs an error to the provider category.
func ProviderError(format string, args ...interface{}) { Get(CategoryProvider).Error(format, args...) }
