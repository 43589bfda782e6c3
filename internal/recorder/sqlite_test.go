package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoundSentinel/internal/model"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	defer rec.Close()

	ts := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, rec.RecordRound(&RoundEvent{
		SessionID: "s1",
		Index:     0,
		Round:     model.Round{Timestamp: ts, Multiplier: 12.5, Score: 2, Type: model.RoundPink, PinkAtEntry: true},
		Momentum:  2.25,
		Zone:      model.ZoneNoData,
	}))
	require.NoError(t, rec.RecordEdit(&EditEvent{SessionID: "s1", Action: "EDIT", Index: 0, Before: 12.5, After: 3}))
	require.NoError(t, rec.RecordReset(&ResetEvent{SessionID: "s1", RoundsCleared: 1}))
	require.NoError(t, rec.RecordSnapshot(&model.Snapshot{
		SessionID: "s1",
		TakenAt:   ts,
		Settings:  model.Settings{WindowSize: 20, PinkThreshold: 10, StrictMode: true},
		Momentum:  []float64{0},
		Signal:    model.Signal{LatestMSI: model.MSIValue{Value: 4, Ready: true}, Tier: model.ZoneTier{Zone: model.ZonePurple}},
	}))

	for _, table := range []string{"rounds", "round_edits", "resets", "snapshots"} {
		n, err := rec.CountRows(table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}

	_, err = rec.CountRows("sqlite_master; DROP TABLE rounds")
	assert.Error(t, err)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordRound(&RoundEvent{}))
	assert.NoError(t, rec.RecordSnapshot(&model.Snapshot{}))
	assert.NoError(t, rec.Close())
}
