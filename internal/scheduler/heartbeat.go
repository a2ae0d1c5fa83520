package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const HeartbeatJobName = "heartbeat"

// RunObserver is told how each job run ended
type RunObserver interface {
	ObserveJobRun(job string, interrupted bool)
}

// Heartbeat is a placeholder job: it logs, waits for the configured work
// duration and logs again. It touches no catalog data.
type Heartbeat struct {
	log      *zap.Logger
	work     time.Duration
	observer RunObserver
}

// NewHeartbeat creates the job. observer may be nil.
func NewHeartbeat(log *zap.Logger, work time.Duration, observer RunObserver) *Heartbeat {
	return &Heartbeat{
		log:      log.With(zap.String("job", HeartbeatJobName)),
		work:     work,
		observer: observer,
	}
}

func (h *Heartbeat) Run(ctx context.Context) {
	h.log.Info("Job started", zap.Time("start_time", time.Now()))

	interrupted := false
	timer := time.NewTimer(h.work)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		interrupted = true
	}

	h.log.Info("Job finished", zap.Time("end_time", time.Now()), zap.Bool("interrupted", interrupted))
	if h.observer != nil {
		h.observer.ObserveJobRun(HeartbeatJobName, interrupted)
	}
}
