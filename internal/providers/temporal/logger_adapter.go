package temporal

import (
	"fmt"

	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// zapLogger routes Temporal SDK logs to zap
type zapLogger struct {
	logger *zap.Logger
}

// NewZapLoggerAdapter adapts a zap logger to Temporal's log.Logger and log.WithLogger
func NewZapLoggerAdapter(logger *zap.Logger) log.Logger {
	return &zapLogger{logger: logger}
}

func (z *zapLogger) Debug(msg string, keyvals ...interface{}) {
	z.logger.Debug(msg, fields(keyvals)...)
}

func (z *zapLogger) Info(msg string, keyvals ...interface{}) {
	z.logger.Info(msg, fields(keyvals)...)
}

func (z *zapLogger) Warn(msg string, keyvals ...interface{}) {
	z.logger.Warn(msg, fields(keyvals)...)
}

func (z *zapLogger) Error(msg string, keyvals ...interface{}) {
	z.logger.Error(msg, fields(keyvals)...)
}

// With returns a child logger carrying keyvals on every entry
func (z *zapLogger) With(keyvals ...interface{}) log.Logger {
	return &zapLogger{logger: z.logger.With(fields(keyvals)...)}
}

// fields converts Temporal's alternating key, value list. A dangling key is kept with a nil value.
func fields(keyvals []interface{}) []zap.Field {
	out := make([]zap.Field, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		var val interface{}
		if i+1 < len(keyvals) {
			val = keyvals[i+1]
		}
		out = append(out, zap.Any(key, val))
	}
	return out
}
