package audit

import (
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

// Sink is where use cases hand off entries that do not have to commit
// with the owning transaction.
type Sink interface {
	Dispatch(entry *models.SessionAuditLog)
}

// Dispatcher writes non-monetary audit entries off the request path.
// The queue never blocks a state transition; overflow drops the entry.
type Dispatcher struct {
	recorder *Recorder
	logger   *zap.Logger
	queue    chan *models.SessionAuditLog
}

func NewDispatcher(recorder *Recorder, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		logger:   logger,
		queue:    make(chan *models.SessionAuditLog, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for entry := range d.queue {
		if err := d.recorder.Log(entry); err != nil {
			d.logger.Error("audit write failed",
				zap.Uint("session_id", entry.SessionID),
				zap.String("action", entry.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(entry *models.SessionAuditLog) {
	select {
	case d.queue <- entry:
	default:
		d.logger.Error("audit queue full, dropping entry",
			zap.Uint("session_id", entry.SessionID),
			zap.String("action", entry.Action),
		)
	}
}
