package collector

import "go.uber.org/zap"

// Sink receives every assembled record, one call per record.
type Sink interface {
	Emit(rec Record)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(rec Record)

func (f SinkFunc) Emit(rec Record) { f(rec) }

// LogSink writes each record as one informational log entry carrying
// the index followed by every attribute in field order.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a LogSink writing to logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(rec Record) {
	fields := make([]zap.Field, 0, len(rec.Attributes)+1)
	fields = append(fields, zap.Int("index", rec.Index))
	for _, a := range rec.Attributes {
		fields = append(fields, zap.String(a.Name, a.Value))
	}
	s.logger.Info(rec.String(), fields...)
}
