package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records scoreboard refreshes. A nil *Metrics is a no-op.
type Metrics struct {
	refreshes           *prometheus.CounterVec
	refreshDuration     prometheus.Histogram
	participantsScored  prometheus.Gauge
	participantFailures prometheus.Counter
	matchesStarted      prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prono",
			Name:      "scoreboard_refreshes_total",
			Help:      "Scoreboard refreshes by result.",
		}, []string{"result"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "prono",
			Name:      "scoreboard_refresh_duration_seconds",
			Help:      "Time spent fetching, normalizing and scoring.",
			Buckets:   prometheus.DefBuckets,
		}),
		participantsScored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "prono",
			Name:      "participants_scored",
			Help:      "Participants scored in the last successful refresh.",
		}),
		participantFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prono",
			Name:      "participant_scoring_failures_total",
			Help:      "Participants whose scoring failed.",
		}),
		matchesStarted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "prono",
			Name:      "matches_started",
			Help:      "Group matches started in the last snapshot.",
		}),
	}
	reg.MustRegister(m.refreshes, m.refreshDuration, m.participantsScored, m.participantFailures, m.matchesStarted)
	return m
}

func (m *Metrics) ObserveRefresh(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.refreshes.WithLabelValues(result).Inc()
	m.refreshDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) SetParticipantsScored(n int) {
	if m == nil {
		return
	}
	m.participantsScored.Set(float64(n))
}

func (m *Metrics) AddParticipantFailures(n int) {
	if m == nil {
		return
	}
	m.participantFailures.Add(float64(n))
}

func (m *Metrics) SetMatchesStarted(n int) {
	if m == nil {
		return
	}
	m.matchesStarted.Set(float64(n))
}
