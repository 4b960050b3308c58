package analytics

import (
	"context"

	"github.com/charmbracelet/log"
)

// LogSink writes each event as a structured info line.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink writing to logger. If logger is nil,
// log.Default() is used.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger.WithPrefix("analytics")}
}

func (s *LogSink) Track(_ context.Context, e Event) error {
	kv := make([]any, 0, 4+2*len(e.Properties))
	kv = append(kv, "id", e.ID, "type", e.Type)
	for _, k := range sortedKeys(e.Properties) {
		kv = append(kv, k, e.Properties[k])
	}
	s.logger.Info("event", kv...)
	return nil
}

func (s *LogSink) Close(context.Context) error { return nil }
