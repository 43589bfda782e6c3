package recorder

import "RoundSentinel/internal/model"

// RoundEvent holds data for one recorded round.
type RoundEvent struct {
	SessionID string
	Index     int
	Round     model.Round
	Momentum  float64
	MSI       model.MSIValue
	Zone      model.EntryZone
}

// EditEvent records a change to a historical round.
type EditEvent struct {
	SessionID string
	Action    string // "EDIT" or "DELETE"
	Index     int
	Before    float64
	After     float64 // zero for deletes
}

// ResetEvent records a full session reset.
type ResetEvent struct {
	SessionID     string
	RoundsCleared int
}

// Recorder journals session activity for later analysis. It is never read
// back to restore a session.
type Recorder interface {
	RecordRound(evt *RoundEvent) error
	RecordEdit(evt *EditEvent) error
	RecordReset(evt *ResetEvent) error
	RecordSnapshot(snap *model.Snapshot) error
	Close() error
}
