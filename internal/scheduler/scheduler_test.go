package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTracker struct {
	calls atomic.Int32
	err   error
}

func (c *countingTracker) RecordSnapshot() error {
	c.calls.Add(1)
	return c.err
}

func TestRegisterAll(t *testing.T) {
	s := NewScheduler(&countingTracker{})
	require.NoError(t, s.RegisterAll("0 */5 * * * *"))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestRegisterAll_InvalidSpec(t *testing.T) {
	s := NewScheduler(&countingTracker{})
	err := s.RegisterAll("every five minutes")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "register snapshot task")
}

func TestRunSnapshotNow(t *testing.T) {
	tr := &countingTracker{err: errors.New("disk full")}
	s := NewScheduler(tr)

	s.RunSnapshotNow()
	s.RunSnapshotNow()
	assert.Equal(t, int32(2), tr.calls.Load())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&countingTracker{})
	require.NoError(t, s.RegisterAll("@every 1h"))
	s.Start()
	s.Stop()
}
