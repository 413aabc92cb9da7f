package utils

import (
	"context"

	"go.uber.org/zap"
)

type logKeyType struct{}

// LogContext returns a context carrying the given log fields in addition to
// any fields already stored on ctx.
func LogContext(ctx context.Context, fields ...zap.Field) context.Context {
	old := GetLogContextFields(ctx)
	fields = append(old, fields...)
	return context.WithValue(ctx, logKeyType{}, fields)
}

func GetLogContextFields(ctx context.Context) []zap.Field {
	fields, ok := ctx.Value(logKeyType{}).([]zap.Field)
	if !ok {
		return nil
	}
	return fields
}

// GetLogFromContext attaches the fields stored on ctx to parentLog.
func GetLogFromContext(ctx context.Context, parentLog *zap.Logger) *zap.Logger {
	return parentLog.With(GetLogContextFields(ctx)...)
}

// LogContextWith stores fields on ctx and returns a logger that already
// carries them, so callers don't have to attach them twice.
func LogContextWith(ctx context.Context, parentLog *zap.Logger, fields ...zap.Field) (context.Context, *zap.Logger) {
	ctx = LogContext(ctx, fields...)
	parentLog = parentLog.With(fields...)
	return ctx, parentLog
}
