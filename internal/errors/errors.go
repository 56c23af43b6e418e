package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// ErrorType buckets application errors by origin.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeAnalysis   ErrorType = "analysis"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes shared across packages.
const (
	ErrCodeFileNotFound    = "FILE_NOT_FOUND"
	ErrCodeFileNotReadable = "FILE_NOT_READABLE"
	ErrCodeInvalidFormat   = "INVALID_FORMAT"
	ErrCodeAnalysisFailed  = "ANALYSIS_FAILED"
	ErrCodeEmptyInput      = "EMPTY_INPUT"
	ErrCodeUnknownPattern  = "UNKNOWN_PATTERN"
	ErrCodeInvalidConfig   = "INVALID_CONFIG"
)

// AppError is the structured error every layer raises: a type for bucketing,
// a stable code for programmatic handling, and an optional wrapped cause.
type AppError struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"cause,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair that LogError will emit alongside
// the error.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newAppError(typ ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    typ,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, code, message, cause)
}

func NewIOError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeIO, code, message, cause)
}

func NewAnalysisError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeAnalysis, code, message, cause)
}

func NewConfigError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeConfig, code, message, cause)
}

func NewInternalError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeInternal, code, message, cause)
}

// Logger is a thin wrapper over slog that knows how to flatten an AppError
// into structured fields. All application logging goes through it.
type Logger struct {
	logger *slog.Logger
}

// New builds a JSON logger at the named level ("debug", "info", "warn",
// "error").
func New(level string) (*Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})
	return &Logger{logger: slog.New(handler)}, nil
}

// LogError emits err at error level. AppErrors contribute their type, code,
// message, and context as individual fields.
func (l *Logger) LogError(err error, message string, args ...any) {
	appErr, ok := err.(*AppError)
	if !ok {
		l.logger.Error(message, append([]any{"error", err.Error()}, args...)...)
		return
	}

	logArgs := []any{
		"error_type", appErr.Type,
		"error_code", appErr.Code,
		"error_message", appErr.Message,
	}
	for key, value := range appErr.Context {
		logArgs = append(logArgs, key, value)
	}
	logArgs = append(logArgs, args...)

	l.logger.Error(message, logArgs...)
}

func (l *Logger) Info(message string, args ...any) {
	l.logger.Info(message, args...)
}

func (l *Logger) Debug(message string, args ...any) {
	l.logger.Debug(message, args...)
}

func (l *Logger) Warn(message string, args ...any) {
	l.logger.Warn(message, args...)
}
