// Package observability provides logging and metrics.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LoggingConfig defines which types of automated logging are enabled.
type LoggingConfig struct {
	EnableGatewayLogging bool
	EnableStoreLogging   bool
}

var (
	// Config holds the current logging configuration.
	Config = LoggingConfig{
		EnableGatewayLogging: true,
		EnableStoreLogging:   true,
	}
)

// GatewayLogger provides structured logging for gateway requests.
type GatewayLogger struct {
	logger *Logger
}

// NewGatewayLogger creates a new GatewayLogger.
func NewGatewayLogger() *GatewayLogger {
	return &GatewayLogger{logger: GlobalLogger}
}

// LogRequest logs a gateway request and its outcome.
func (l *GatewayLogger) LogRequest(ctx context.Context, method, table string, status int) {
	if !Config.EnableGatewayLogging {
		return
	}
	l.logger.InfoContext(ctx, "gateway request",
		slog.String("method", method),
		slog.String("table", table),
		slog.Int("status", status),
	)
}

// LogError logs a gateway transport or decode error.
func (l *GatewayLogger) LogError(ctx context.Context, method, table string, err error) {
	if !Config.EnableGatewayLogging {
		return
	}
	l.logger.ErrorContext(ctx, "gateway error",
		slog.String("method", method),
		slog.String("table", table),
		slog.String("error", err.Error()),
	)
}

// LogAuthEvent logs an auth state change delivered to subscribers.
func (l *GatewayLogger) LogAuthEvent(ctx context.Context, event string) {
	if !Config.EnableGatewayLogging {
		return
	}
	l.logger.InfoContext(ctx, "auth state change", slog.String("event", event))
}

// StoreLogger provides structured logging for store actions.
type StoreLogger struct {
	logger *Logger
}

// NewStoreLogger creates a new StoreLogger.
func NewStoreLogger() *StoreLogger {
	return &StoreLogger{logger: GlobalLogger}
}

// LogAction logs a store action.
func (l *StoreLogger) LogAction(ctx context.Context, action string, fields map[string]interface{}) {
	if !Config.EnableStoreLogging {
		return
	}
	attrs := []any{slog.String("action", action)}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "store action", attrs...)
}

// LogFallback logs a fallback activation masking a remote failure.
func (l *StoreLogger) LogFallback(ctx context.Context, action string, err error) {
	if !Config.EnableStoreLogging {
		return
	}
	l.logger.WarnContext(ctx, "store fallback",
		slog.String("action", action),
		slog.String("error", errString(err)),
	)
}

// LogError logs a store action failure surfaced to the caller.
func (l *StoreLogger) LogError(ctx context.Context, action string, err error) {
	if !Config.EnableStoreLogging {
		return
	}
	l.logger.ErrorContext(ctx, "store error",
		slog.String("action", action),
		slog.String("error", errString(err)),
	)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
