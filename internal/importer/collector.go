package importer

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"RoundSentinel/internal/model"
	"RoundSentinel/internal/session"
)

// MockSource returns fixed rows for development and testing.
type MockSource struct {
	Rows []Row
	Err  error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchRounds() ([]Row, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}

// RoundRecorder accepts a batch of rounds all or nothing; both a Session and
// the tracker service satisfy it.
type RoundRecorder interface {
	RecordRounds(entries []session.Entry) ([]model.Round, error)
}

// Import fetches rows from src and records them into dst as one batch. A row
// that fails validation leaves dst unchanged.
func Import(src Source, dst RoundRecorder) (int, error) {
	rows, err := src.FetchRounds()
	if err != nil {
		return 0, fmt.Errorf("fetch rounds from %s: %w", src.Name(), err)
	}

	entries := make([]session.Entry, len(rows))
	for i, row := range rows {
		entries[i] = session.Entry{Multiplier: row.Multiplier, Timestamp: row.Timestamp}
	}
	recorded, err := dst.RecordRounds(entries)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", src.Name(), err)
	}
	log.WithFields(log.Fields{"source": src.Name(), "rounds": len(recorded)}).Info("rounds imported")
	return len(recorded), nil
}
