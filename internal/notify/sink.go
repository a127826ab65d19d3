package notify

import (
	"context"

	"go.uber.org/zap"
)

// Sink is a swappable notification backend.
type Sink interface {
	Publish(ctx context.Context, ev Event) error
}

// LogSink is the fallback when no broker is configured: events are
// structured-logged and considered delivered.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, ev Event) error {
	s.logger.Info("notify",
		zap.String("event_id", ev.ID),
		zap.String("type", ev.Type),
		zap.Uint("recipient_id", ev.RecipientID),
		zap.Uint("session_id", ev.SessionID),
		zap.String("message", ev.Message),
	)
	return nil
}
