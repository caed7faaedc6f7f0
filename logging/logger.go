// Package logging provides structured logging for the panel bridge built on
// go.uber.org/zap: console plus rotating file output, named sub-loggers, and
// automatic redaction of sensitive values.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with redaction of sensitive field values.
//
// Example:
//
//	logger, err := NewLogger(true, "panel-bridge.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("panel server started", zap.String("addr", "localhost:3800"))
type Logger struct {
	zap           *zap.Logger
	isDevelopment bool
	logFilePath   string
}

// NewLogger creates a Logger for the given environment.
//
// In development mode the console gets colored human-readable output at debug
// level; otherwise both outputs are JSON at info level. The file output is
// always JSON and rotates per DefaultFileWriterConfig. The level can be
// overridden with PSAI_LOG_LEVEL regardless of mode.
func NewLogger(isDevelopment bool, logFilePath string) (*Logger, error) {
	return NewLoggerWithConfig(isDevelopment, logFilePath, DefaultFileWriterConfig())
}

// NewLoggerWithConfig creates a Logger with custom file rotation configuration.
func NewLoggerWithConfig(isDevelopment bool, logFilePath string, fileConfig FileWriterConfig) (*Logger, error) {
	defaultLevel := zapcore.InfoLevel
	if isDevelopment {
		defaultLevel = zapcore.DebugLevel
	}
	level := ParseLogLevel("PSAI_LOG_LEVEL", defaultLevel)

	core, err := NewMultiCore(level, logFilePath, fileConfig, isDevelopment)
	if err != nil {
		return nil, fmt.Errorf("failed to create log core: %w", err)
	}

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1), // Skip this wrapper layer
	)

	return &Logger{
		zap:           zapLogger,
		isDevelopment: isDevelopment,
		logFilePath:   logFilePath,
	}, nil
}

// NewTestLogger creates a Logger writing to the provided core, bypassing file
// setup. Intended for tests that need a *Logger rather than a bare *zap.Logger.
func NewTestLogger(core zapcore.Core) *Logger {
	return &Logger{zap: zap.New(core)}
}

// Named returns a logger with the given name segment appended, for
// per-component sub-loggers ("controller", "inspector", "journal").
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		zap:           l.zap.Named(name),
		isDevelopment: l.isDevelopment,
		logFilePath:   l.logFilePath,
	}
}

// Zap returns the underlying *zap.Logger for components that take one directly.
// Fields passed to the raw logger are not redacted.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Sync flushes any buffered log entries. Call before exiting.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

// Debug logs a message at DebugLevel with optional structured fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, redactFields(fields)...)
}

// Info logs a message at InfoLevel with optional structured fields.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, redactFields(fields)...)
}

// Warn logs a message at WarnLevel with optional structured fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, redactFields(fields)...)
}

// Error logs a message at ErrorLevel with optional structured fields.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, redactFields(fields)...)
}

// Fatal logs a message at FatalLevel then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, redactFields(fields)...)
}

// redactFields applies sensitive-data redaction to string field values.
// Non-string fields pass through untouched.
func redactFields(fields []zap.Field) []zap.Field {
	for i, f := range fields {
		if f.Type == zapcore.StringType {
			redacted := RedactField(f.Key, f.String)
			if redacted != f.String {
				fields[i] = zap.String(f.Key, redacted)
			}
		}
	}
	return fields
}
