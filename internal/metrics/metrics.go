// Package metrics exposes the matrix state and relay health to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

var (
	OptionScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matrix_option_score",
		Help: "Current weighted score per option.",
	}, []string{"option"})

	OptionPercent = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matrix_option_percent",
		Help: "Weighted score as a percentage of the maximum possible score.",
	}, []string{"option"})

	TotalWeight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matrix_total_weight",
		Help: "Sum of all criterion weights.",
	})

	Criteria = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matrix_criteria",
		Help: "Number of criteria in the matrix.",
	})

	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matrix_mutations_total",
		Help: "Applied matrix mutations by kind.",
	}, []string{"kind"})

	RelayDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matrix_relay_dropped_total",
		Help: "Changes dropped because the relay buffer was full.",
	})

	SinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matrix_relay_sink_errors_total",
		Help: "Relay delivery failures by sink.",
	}, []string{"sink"})
)

// Observe sets the state gauges from an analysis.
func Observe(a scoring.Analysis) {
	TotalWeight.Set(float64(a.TotalWeight))
	Criteria.Set(float64(a.Criteria))
	for _, r := range a.Options {
		OptionScore.WithLabelValues(string(r.Option)).Set(float64(r.Score))
		OptionPercent.WithLabelValues(string(r.Option)).Set(r.Percent)
	}
}

// ObserveChange counts the mutation and refreshes the gauges.
func ObserveChange(c scoring.Change) {
	Mutations.WithLabelValues(string(c.Kind)).Inc()
	Observe(c.Analysis)
}
