package eventbus

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

// LoggerAdapter lets watermill write through the service logger.
type LoggerAdapter struct {
	logger *logging.Logger
	fields watermill.LogFields
}

func NewLoggerAdapter(logger *logging.Logger) *LoggerAdapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoggerAdapter{logger: logger.Named("watermill")}
}

func (a *LoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(msg, append(a.args(fields), "error", err)...)
}

func (a *LoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(msg, a.args(fields)...)
}

func (a *LoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, a.args(fields)...)
}

// Trace is folded into debug; the service logger has no trace level.
func (a *LoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, a.args(fields)...)
}

func (a *LoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &LoggerAdapter{logger: a.logger, fields: a.fields.Add(fields)}
}

func (a *LoggerAdapter) args(fields watermill.LogFields) []any {
	merged := a.fields.Add(fields)
	out := make([]any, 0, len(merged)*2)
	for key, value := range merged {
		out = append(out, key, value)
	}
	return out
}
