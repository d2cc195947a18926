package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// AdminKey is the context key for the signed-in admin username
	AdminKey contextKey = "admin"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// FromContextOr retrieves the logger from context, returns fallback if not found
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}

// WithRequestID adds request ID to context and returns enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithAdmin adds the admin username to context and returns enriched logger
func WithAdmin(ctx context.Context, logger *zap.Logger, username string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, AdminKey, username)
	enriched := logger.With(zap.String("admin", username))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetAdmin retrieves the admin username from context
func GetAdmin(ctx context.Context) string {
	if username, ok := ctx.Value(AdminKey).(string); ok {
		return username
	}
	return ""
}

// GetTraceID extracts the trace ID from the context's span.
// Returns an empty string if no valid span exists.
func GetTraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// L returns the context logger enriched with trace_id and span_id
// when the context carries a sampled span.
//
//	logger.L(ctx).Info("product saved", zap.Int64("id", id))
func L(ctx context.Context) *zap.Logger {
	return withTrace(ctx, FromContext(ctx))
}

// LOr is L with a fallback logger for contexts that carry none,
// such as calls made outside an HTTP request.
func LOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	return withTrace(ctx, FromContextOr(ctx, fallback))
}

func withTrace(ctx context.Context, l *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
