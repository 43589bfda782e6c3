package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"RoundSentinel/internal/model"
)

// Metrics holds all Prometheus metrics for the tracker.
type Metrics struct {
	RoundsRecorded prometheus.Counter
	RoundEdits     *prometheus.CounterVec // labels: action=edit|delete
	Resets         prometheus.Counter
	RejectedInputs prometheus.Counter

	Rounds      prometheus.Gauge
	Momentum    prometheus.Gauge
	LatestMSI   prometheus.Gauge
	MSIReady    prometheus.Gauge
	PinkZones   prometheus.Gauge
	DangerZones prometheus.Gauge
	DangerScore prometheus.Gauge
	Projections prometheus.Gauge
	EntryZone   *prometheus.GaugeVec // labels: zone; 1 for the active zone

	registry *prometheus.Registry
}

var zones = []model.EntryZone{
	model.ZoneNoData, model.ZonePink, model.ZonePurple, model.ZonePullback, model.ZoneNeutral,
}

// NewMetrics creates and registers all metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RoundsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roundsentinel_rounds_recorded_total",
			Help: "Total rounds recorded",
		}),
		RoundEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roundsentinel_round_edits_total",
			Help: "Historical round edits and deletes",
		}, []string{"action"}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roundsentinel_resets_total",
			Help: "Full session resets",
		}),
		RejectedInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roundsentinel_rejected_inputs_total",
			Help: "Inputs rejected at the boundary",
		}),
		Rounds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_rounds",
			Help: "Rounds in the ledger",
		}),
		Momentum: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_momentum",
			Help: "Latest cumulative momentum",
		}),
		LatestMSI: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_msi",
			Help: "Latest Momentum Score Index (0 while the window fills)",
		}),
		MSIReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_msi_ready",
			Help: "1 when the MSI window is full",
		}),
		PinkZones: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_pink_zones",
			Help: "Pink rounds in the ledger",
		}),
		DangerZones: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_danger_zones",
			Help: "Rounds flagged by the danger detector",
		}),
		DangerScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_danger_score",
			Help: "Danger gauge 0-100",
		}),
		Projections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roundsentinel_projections",
			Help: "Sniper projection edges",
		}),
		EntryZone: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "roundsentinel_entry_zone",
			Help: "Active entry zone",
		}, []string{"zone"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RoundsRecorded, m.RoundEdits, m.Resets, m.RejectedInputs,
		m.Rounds, m.Momentum, m.LatestMSI, m.MSIReady,
		m.PinkZones, m.DangerZones, m.DangerScore, m.Projections, m.EntryZone,
	)
	return m
}

// Registry exposes the registry for scraping and tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Observe refreshes every gauge from a snapshot.
func (m *Metrics) Observe(snap *model.Snapshot) {
	sig := snap.Signal
	m.Rounds.Set(float64(len(snap.Rounds)))
	m.Momentum.Set(snap.LatestMomentum())
	if sig.LatestMSI.Ready {
		m.LatestMSI.Set(sig.LatestMSI.Value)
		m.MSIReady.Set(1)
	} else {
		m.LatestMSI.Set(0)
		m.MSIReady.Set(0)
	}
	m.PinkZones.Set(float64(len(snap.PinkZones)))
	m.DangerZones.Set(float64(sig.DangerCount))
	m.DangerScore.Set(float64(sig.DangerScore))
	m.Projections.Set(float64(len(snap.Projections)))

	active := sig.Tier.Zone
	if active == "" {
		active = model.ZoneNoData
	}
	for _, z := range zones {
		v := 0.0
		if z == active {
			v = 1
		}
		m.EntryZone.WithLabelValues(string(z)).Set(v)
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", addr).Info("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
