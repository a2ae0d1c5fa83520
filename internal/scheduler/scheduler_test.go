package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type runRecord struct {
	job         string
	interrupted bool
}

type chanObserver chan runRecord

func (c chanObserver) ObserveJobRun(job string, interrupted bool) {
	c <- runRecord{job, interrupted}
}

func TestHeartbeat_Completes(t *testing.T) {
	runs := make(chanObserver, 1)
	NewHeartbeat(zap.NewNop(), 10*time.Millisecond, runs).Run(context.Background())

	assert.Equal(t, runRecord{HeartbeatJobName, false}, <-runs)
}

func TestHeartbeat_InterruptedByContext(t *testing.T) {
	runs := make(chanObserver, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	NewHeartbeat(zap.NewNop(), time.Hour, runs).Run(ctx)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, runRecord{HeartbeatJobName, true}, <-runs)
}

func TestScheduler_RunsJob(t *testing.T) {
	s := New(zap.NewNop())
	runs := make(chanObserver, 10)
	require.NoError(t, s.AddJob("@every 1s", HeartbeatJobName, NewHeartbeat(zap.NewNop(), 0, runs).Run))

	s.Start()
	defer s.Stop(context.Background())

	select {
	case rec := <-runs:
		assert.False(t, rec.interrupted)
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestScheduler_StopInterruptsRunningJob(t *testing.T) {
	s := New(zap.NewNop())
	started := make(chan struct{}, 1)
	runs := make(chanObserver, 10)
	hb := NewHeartbeat(zap.NewNop(), time.Hour, runs)

	require.NoError(t, s.AddJob("@every 1s", HeartbeatJobName, func(ctx context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
		hb.Run(ctx)
	}))
	s.Start()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	assert.Equal(t, runRecord{HeartbeatJobName, true}, <-runs)
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New(zap.NewNop())
	err := s.AddJob("every minute please", "broken", func(context.Context) {})
	assert.Error(t, err)
}
