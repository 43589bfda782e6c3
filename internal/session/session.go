// Package session owns the round ledger of one dashboard session and keeps
// every derived indicator consistent with it.
//
// A Session is not safe for concurrent use; callers that share one across
// goroutines must serialize access.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"RoundSentinel/internal/calculator"
	"RoundSentinel/internal/model"
	"RoundSentinel/internal/strategy"
)

// Option customizes a Session.
type Option func(*Session)

// WithClock sets the time source used to stamp recorded rounds.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithID sets the session identifier instead of a random one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Entry is one round of a batch. A zero Timestamp is stamped by the session.
type Entry struct {
	Multiplier float64
	Timestamp  time.Time
}

// Session holds the ledger and its derived caches.
type Session struct {
	id       string
	settings model.Settings
	clock    func() time.Time

	rounds   []model.Round
	momentum *calculator.Momentum
	dangers  []int
	msi      []model.MSIValue
}

// New creates an empty session with validated settings.
func New(settings model.Settings, opts ...Option) (*Session, error) {
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	s := &Session{
		id:       uuid.NewString(),
		settings: settings,
		clock:    time.Now,
		momentum: calculator.NewMomentum(),
		dangers:  []int{},
		msi:      []model.MSIValue{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Settings returns the active configuration.
func (s *Session) Settings() model.Settings { return s.settings }

// Len returns the number of rounds in the ledger.
func (s *Session) Len() int { return len(s.rounds) }

// RecordRound appends a round stamped with the session clock.
func (s *Session) RecordRound(multiplier float64) (model.Round, error) {
	return s.RecordRoundAt(multiplier, s.clock())
}

// RecordRoundAt appends a round with an explicit timestamp, which must not
// precede the last recorded round.
func (s *Session) RecordRoundAt(multiplier float64, ts time.Time) (model.Round, error) {
	if err := ValidateMultiplier(multiplier); err != nil {
		return model.Round{}, err
	}
	if last, ok := s.Last(); ok && ts.Before(last) {
		return model.Round{}, fmt.Errorf("%w: %s < %s", ErrTimestampOrder,
			ts.Format(time.RFC3339), last.Format(time.RFC3339))
	}

	r := s.appendRound(multiplier, ts)
	s.dangers = calculator.DetectDangers(model.Multipliers(s.rounds))
	s.recomputeMSI()
	return r, nil
}

// RecordRounds appends a batch of rounds, all or nothing. Blank timestamps
// share a single clock reading; a batch mixing blank and explicit timestamps
// is rejected.
func (s *Session) RecordRounds(entries []Entry) ([]model.Round, error) {
	blank := 0
	for i, e := range entries {
		if err := ValidateMultiplier(e.Multiplier); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if e.Timestamp.IsZero() {
			blank++
		}
	}
	if blank > 0 && blank < len(entries) {
		return nil, fmt.Errorf("%w: %d of %d blank", ErrMixedTimestamps, blank, len(entries))
	}
	if len(entries) == 0 {
		return []model.Round{}, nil
	}

	var now time.Time
	if blank > 0 {
		now = s.clock()
	}
	stamps := make([]time.Time, len(entries))
	last, ok := s.Last()
	for i, e := range entries {
		ts := e.Timestamp
		if ts.IsZero() {
			ts = now
		}
		if ok && ts.Before(last) {
			return nil, fmt.Errorf("entry %d: %w: %s < %s", i+1, ErrTimestampOrder,
				ts.Format(time.RFC3339), last.Format(time.RFC3339))
		}
		stamps[i], last, ok = ts, ts, true
	}

	out := make([]model.Round, len(entries))
	for i, e := range entries {
		out[i] = s.appendRound(e.Multiplier, stamps[i])
	}
	s.dangers = calculator.DetectDangers(model.Multipliers(s.rounds))
	s.recomputeMSI()
	return out, nil
}

// Last returns the timestamp of the newest round.
func (s *Session) Last() (time.Time, bool) {
	if len(s.rounds) == 0 {
		return time.Time{}, false
	}
	return s.rounds[len(s.rounds)-1].Timestamp, true
}

func (s *Session) appendRound(multiplier float64, ts time.Time) model.Round {
	r := s.derive(model.Round{Timestamp: ts, Multiplier: multiplier})
	r.PinkAtEntry = multiplier >= s.settings.PinkThreshold
	s.rounds = append(s.rounds, r)
	s.momentum.Append(multiplier)
	return r
}

// SetConfig applies new settings. A threshold change re-derives score and
// type of every round; the pink flags frozen at entry are left as they were.
func (s *Session) SetConfig(settings model.Settings) error {
	if err := ValidateSettings(settings); err != nil {
		return err
	}
	thresholdChanged := settings.PinkThreshold != s.settings.PinkThreshold
	s.settings = settings
	if thresholdChanged {
		for i := range s.rounds {
			s.rounds[i] = s.derive(s.rounds[i])
		}
	}
	s.recomputeMSI()
	return nil
}

// EditRound replaces the multiplier of an existing round and rebuilds every
// derived series.
func (s *Session) EditRound(index int, multiplier float64) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if err := ValidateMultiplier(multiplier); err != nil {
		return err
	}
	r := s.rounds[index]
	r.Multiplier = multiplier
	r = s.derive(r)
	r.PinkAtEntry = multiplier >= s.settings.PinkThreshold
	s.rounds[index] = r
	s.rebuild()
	return nil
}

// DeleteRound removes a round and rebuilds every derived series.
func (s *Session) DeleteRound(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.rounds = append(s.rounds[:index], s.rounds[index+1:]...)
	s.rebuild()
	return nil
}

// Reset clears the ledger and all derived state. Settings are kept.
func (s *Session) Reset() {
	s.rounds = nil
	s.momentum.Reset()
	s.dangers = []int{}
	s.msi = []model.MSIValue{}
}

// Rounds returns a copy of the ledger.
func (s *Session) Rounds() []model.Round {
	out := make([]model.Round, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// MomentumSeries returns the cumulative momentum, one longer than the ledger.
func (s *Session) MomentumSeries() []float64 {
	return s.momentum.Series()
}

// SmoothedMomentum returns the EWM view of the momentum series.
func (s *Session) SmoothedMomentum() []float64 {
	smoothed, _ := calculator.EWM(s.momentum.Series(), calculator.SmoothingAlpha)
	return smoothed
}

// PinkZones returns the ledger indices of pink rounds.
func (s *Session) PinkZones() []int {
	return calculator.PinkZones(s.rounds, s.settings.PinkThreshold, s.settings.StrictMode)
}

// DangerZones returns the ledger indices flagged by the danger detector.
func (s *Session) DangerZones() []int {
	out := make([]int, len(s.dangers))
	copy(out, s.dangers)
	return out
}

// DangerScore returns the 0-100 danger gauge.
func (s *Session) DangerScore() int {
	return calculator.DangerScore(len(s.dangers))
}

// MSISeries returns the MSI value for every round.
func (s *Session) MSISeries() []model.MSIValue {
	out := make([]model.MSIValue, len(s.msi))
	copy(out, s.msi)
	return out
}

// LatestMSI returns the MSI of the last round.
func (s *Session) LatestMSI() model.MSIValue {
	return calculator.LatestMSI(s.msi)
}

// EntryZone classifies the latest MSI.
func (s *Session) EntryZone() model.EntryZone {
	return strategy.EntryZone(s.msi)
}

// Projections runs the sniper scan and returns every matching edge.
func (s *Session) Projections() []model.Projection {
	edges, _ := calculator.ProjectSnipers(s.rounds)
	return edges
}

// PinkProjections runs the sniper scan and returns every pink round with the
// prior pink round that projected it.
func (s *Session) PinkProjections() []model.PinkProjection {
	_, pinks := calculator.ProjectSnipers(s.rounds)
	return pinks
}

// Snapshot collects every derived output.
func (s *Session) Snapshot() *model.Snapshot {
	edges, pinks := calculator.ProjectSnipers(s.rounds)
	return &model.Snapshot{
		SessionID:        s.id,
		TakenAt:          s.clock(),
		Settings:         s.settings,
		Rounds:           s.Rounds(),
		Momentum:         s.MomentumSeries(),
		SmoothedMomentum: s.SmoothedMomentum(),
		PinkZones:        s.PinkZones(),
		DangerZones:      s.DangerZones(),
		MSI:              s.MSISeries(),
		Projections:      edges,
		PinkProjections:  pinks,
		Signal:           *strategy.Evaluate(s.msi, s.dangers),
	}
}

func (s *Session) derive(r model.Round) model.Round {
	return calculator.DeriveRound(r, s.settings.PinkThreshold)
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.rounds) {
		return fmt.Errorf("%w: %d (rounds=%d)", ErrIndexOutOfRange, index, len(s.rounds))
	}
	return nil
}

func (s *Session) rebuild() {
	mults := model.Multipliers(s.rounds)
	s.momentum.Rebuild(mults)
	s.dangers = calculator.DetectDangers(mults)
	s.recomputeMSI()
}

func (s *Session) recomputeMSI() {
	// window is validated positive, so the error path is unreachable
	msi, err := calculator.CalculateMSI(model.Scores(s.rounds), s.settings.WindowSize)
	if err != nil {
		msi = []model.MSIValue{}
	}
	s.msi = msi
}
