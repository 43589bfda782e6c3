// Package tracker serializes access to a dashboard session and fans every
// change out to the recorder, metrics and alerting.
package tracker

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"RoundSentinel/internal/metrics"
	"RoundSentinel/internal/model"
	"RoundSentinel/internal/notifier"
	"RoundSentinel/internal/recorder"
	"RoundSentinel/internal/session"
	"RoundSentinel/internal/strategy"
)

// Alerter delivers alert text to the user.
type Alerter interface {
	Alert(ctx context.Context, text string) error
}

// Service guards one Session with a mutex. Recorder, metrics and alerter
// failures are logged and never fail the operation.
type Service struct {
	mu      sync.Mutex
	sess    *session.Session
	rec     recorder.Recorder
	metrics *metrics.Metrics
	alerter Alerter
	ctx     context.Context
	logger  *log.Entry

	lastZone    model.EntryZone
	lastDangers map[int]bool
	pending     sync.WaitGroup
}

// NewService wires a session to its side effects. metrics and alerter may be nil.
func NewService(ctx context.Context, sess *session.Session, rec recorder.Recorder, m *metrics.Metrics, alerter Alerter) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	s := &Service{
		sess:        sess,
		rec:         rec,
		metrics:     m,
		alerter:     alerter,
		ctx:         ctx,
		logger:      log.WithField("session_id", sess.ID()),
		lastZone:    sess.EntryZone(),
		lastDangers: map[int]bool{},
	}
	for _, i := range sess.DangerZones() {
		s.lastDangers[i] = true
	}
	return s
}

// SessionID returns the id of the wrapped session.
func (s *Service) SessionID() string { return s.sess.ID() }

// RecordRound appends a round stamped now.
func (s *Service) RecordRound(multiplier float64) (model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.sess.RecordRound(multiplier)
	return s.afterRecord(r, err)
}

// RecordRoundAt appends a round with an explicit timestamp.
func (s *Service) RecordRoundAt(multiplier float64, ts time.Time) (model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.sess.RecordRoundAt(multiplier, ts)
	return s.afterRecord(r, err)
}

// RecordRounds appends a batch of rounds, all or nothing.
func (s *Service) RecordRounds(entries []session.Entry) ([]model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rounds, err := s.sess.RecordRounds(entries)
	if err != nil {
		s.reject(err)
		return nil, err
	}
	snap := s.sess.Snapshot()
	first := len(snap.Rounds) - len(rounds)
	for i, r := range rounds {
		idx := first + i
		if err := s.rec.RecordRound(&recorder.RoundEvent{
			SessionID: s.sess.ID(),
			Index:     idx,
			Round:     r,
			Momentum:  snap.Momentum[idx+1],
			MSI:       snap.MSI[idx],
			Zone:      strategy.EntryZone(snap.MSI[:idx+1]),
		}); err != nil {
			s.logger.WithError(err).Error("record round")
		}
	}
	if s.metrics != nil {
		s.metrics.RoundsRecorded.Add(float64(len(rounds)))
	}
	s.logger.WithFields(log.Fields{"first": first, "rounds": len(rounds)}).Info("batch recorded")
	s.publish(snap)
	return rounds, nil
}

func (s *Service) afterRecord(r model.Round, err error) (model.Round, error) {
	if err != nil {
		s.reject(err)
		return r, err
	}
	idx := s.sess.Len() - 1
	snap := s.sess.Snapshot()
	s.logger.WithFields(log.Fields{
		"index":      idx,
		"multiplier": r.Multiplier,
		"type":       r.Type,
		"momentum":   snap.LatestMomentum(),
	}).Info("round recorded")

	if s.metrics != nil {
		s.metrics.RoundsRecorded.Inc()
	}
	if err := s.rec.RecordRound(&recorder.RoundEvent{
		SessionID: s.sess.ID(),
		Index:     idx,
		Round:     r,
		Momentum:  snap.LatestMomentum(),
		MSI:       snap.Signal.LatestMSI,
		Zone:      snap.Signal.Tier.Zone,
	}); err != nil {
		s.logger.WithError(err).Error("record round")
	}
	s.publish(snap)
	return r, nil
}

// EditRound changes the multiplier of a historical round.
func (s *Service) EditRound(index int, multiplier float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.multiplierAt(index)
	if err := s.sess.EditRound(index, multiplier); err != nil {
		s.reject(err)
		return err
	}
	s.afterEdit("EDIT", index, before, multiplier)
	return nil
}

// DeleteRound removes a historical round.
func (s *Service) DeleteRound(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.multiplierAt(index)
	if err := s.sess.DeleteRound(index); err != nil {
		s.reject(err)
		return err
	}
	s.afterEdit("DELETE", index, before, 0)
	return nil
}

func (s *Service) afterEdit(action string, index int, before, after float64) {
	s.logger.WithFields(log.Fields{"action": action, "index": index, "before": before, "after": after}).Info("round changed")
	if s.metrics != nil {
		s.metrics.RoundEdits.WithLabelValues(strings.ToLower(action)).Inc()
	}
	if err := s.rec.RecordEdit(&recorder.EditEvent{
		SessionID: s.sess.ID(),
		Action:    action,
		Index:     index,
		Before:    before,
		After:     after,
	}); err != nil {
		s.logger.WithError(err).Error("record edit")
	}
	// indices shift after edits, so the danger baseline is rebuilt silently
	s.resetBaseline()
	s.publish(s.sess.Snapshot())
}

// SetConfig applies new indicator settings.
func (s *Service) SetConfig(settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.sess.Settings()
	if err := s.sess.SetConfig(settings); err != nil {
		s.reject(err)
		return err
	}
	if before.PinkThreshold != settings.PinkThreshold && settings.StrictMode {
		s.logger.WithFields(log.Fields{
			"from": before.PinkThreshold,
			"to":   settings.PinkThreshold,
		}).Warn("pink threshold changed; strict mode keeps earlier pink zones as recorded")
	}
	s.logger.WithFields(log.Fields{
		"window": settings.WindowSize,
		"pink":   settings.PinkThreshold,
		"strict": settings.StrictMode,
	}).Info("settings updated")
	s.publish(s.sess.Snapshot())
	return nil
}

// Reset clears the session.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := s.sess.Len()
	s.sess.Reset()
	s.logger.WithField("rounds_cleared", cleared).Info("session reset")
	if s.metrics != nil {
		s.metrics.Resets.Inc()
	}
	if err := s.rec.RecordReset(&recorder.ResetEvent{SessionID: s.sess.ID(), RoundsCleared: cleared}); err != nil {
		s.logger.WithError(err).Error("record reset")
	}
	s.resetBaseline()
	s.publish(s.sess.Snapshot())
}

// Snapshot returns every derived output of the session.
func (s *Service) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Snapshot()
}

// RecordSnapshot journals the current snapshot and refreshes the gauges.
// The gauges are set under the lock so they never move back past a newer
// mutation.
func (s *Service) RecordSnapshot() error {
	s.mu.Lock()
	snap := s.sess.Snapshot()
	if s.metrics != nil {
		s.metrics.Observe(snap)
	}
	s.mu.Unlock()
	return s.rec.RecordSnapshot(snap)
}

// HandleCommand processes a chat command and returns a reply.
func (s *Service) HandleCommand(command string) string {
	switch command {
	case "/status":
		return notifier.FormatStatus(s.Snapshot())
	case "/zone":
		snap := s.Snapshot()
		return notifier.FormatZoneChange(snap.Signal.Tier.Zone, snap.Signal.Tier.Zone, snap.Signal.LatestMSI)
	case "/pinks":
		return notifier.FormatPinkList(s.Snapshot().PinkProjections, 10)
	default:
		return "Commands:\n• /status\n• /zone\n• /pinks"
	}
}

// Wait blocks until pending alerts are delivered.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) multiplierAt(index int) float64 {
	rounds := s.sess.Rounds()
	if index < 0 || index >= len(rounds) {
		return 0
	}
	return rounds[index].Multiplier
}

func (s *Service) reject(err error) {
	s.logger.WithError(err).Warn("input rejected")
	if s.metrics != nil {
		s.metrics.RejectedInputs.Inc()
	}
}

func (s *Service) resetBaseline() {
	s.lastDangers = map[int]bool{}
	for _, i := range s.sess.DangerZones() {
		s.lastDangers[i] = true
	}
}

// publish refreshes the gauges and raises alerts for zone transitions and
// newly flagged danger windows.
func (s *Service) publish(snap *model.Snapshot) {
	if s.metrics != nil {
		s.metrics.Observe(snap)
	}

	zone := snap.Signal.Tier.Zone
	if zone != s.lastZone {
		s.logger.WithFields(log.Fields{"from": s.lastZone, "to": zone}).Info("entry zone changed")
		if zone == model.ZonePink || zone == model.ZonePullback {
			s.alert(notifier.FormatZoneChange(s.lastZone, zone, snap.Signal.LatestMSI))
		}
		s.lastZone = zone
	}

	var fresh []int
	for _, i := range snap.DangerZones {
		if !s.lastDangers[i] {
			fresh = append(fresh, i)
			s.lastDangers[i] = true
		}
	}
	if len(fresh) > 0 {
		s.logger.WithField("indices", fresh).Warn("trap pattern detected")
		s.alert(notifier.FormatDangerAlert(fresh, snap.Signal.DangerScore))
	}
}

func (s *Service) alert(text string) {
	if s.alerter == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.alerter.Alert(s.ctx, text); err != nil {
			s.logger.WithError(err).Error("send alert")
		}
	}()
}
