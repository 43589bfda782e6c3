package importer

import "time"

// Row is one round read from a source. A zero Timestamp means the round is
// stamped when it is recorded.
type Row struct {
	Timestamp  time.Time
	Multiplier float64
}

// Source abstracts where a batch of rounds comes from.
type Source interface {
	Name() string
	FetchRounds() ([]Row, error)
}
