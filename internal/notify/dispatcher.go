package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Publisher is the fire-and-forget side use cases see.
type Publisher interface {
	Dispatch(ev Event)
}

// Dispatcher decouples state transitions from delivery: Dispatch never
// blocks and never fails the caller. A full queue drops the event.
type Dispatcher struct {
	sink   Sink
	logger *zap.Logger
	queue  chan Event
}

func NewDispatcher(sink Sink, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 256),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.sink.Publish(ctx, ev); err != nil {
			d.logger.Warn("notification publish failed",
				zap.String("event_id", ev.ID),
				zap.String("type", ev.Type),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("notification queue full, dropping event",
			zap.String("event_id", ev.ID),
			zap.String("type", ev.Type),
		)
	}
}
