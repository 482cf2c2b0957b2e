// Package metrics exposes Prometheus collectors for the chat services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "batepapo"

// Metrics groups the collectors updated by the chat services
type Metrics struct {
	Joins         prometheus.Counter
	Evictions     prometheus.Counter
	Messages      *prometheus.CounterVec
	SweepFailures prometheus.Counter
	SweepsSkipped prometheus.Counter
	SweepDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Joins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participants_joined_total",
			Help:      "Participants that joined the room.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participants_evicted_total",
			Help:      "Participants removed for inactivity.",
		}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_appended_total",
			Help:      "Messages appended to the store, by type.",
		}, []string{"type"}),
		SweepFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_failures_total",
			Help:      "Sweep cycles that ended with an error.",
		}),
		SweepsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_skipped_total",
			Help:      "Ticks skipped because the previous sweep was still running.",
		}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of sweep cycles.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.Joins,
			m.Evictions,
			m.Messages,
			m.SweepFailures,
			m.SweepsSkipped,
			m.SweepDuration,
		)
	}
	return m
}
