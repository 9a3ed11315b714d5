package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bulk_connector"

type Metrics struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	responsesTotal  *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Step commands dispatched, by command and outcome",
		}, []string{"command", "outcome"}),
		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Step command handling latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"command"}),
		responsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Bulk responses delivered to the caller, by state",
		}, []string{"state"}),
	}
}

func (m *Metrics) ObserveCommand(name, outcome string, seconds float64) {
	m.commandsTotal.WithLabelValues(name, outcome).Inc()
	m.commandDuration.WithLabelValues(name).Observe(seconds)
}

func (m *Metrics) ObserveResponse(state string) {
	m.responsesTotal.WithLabelValues(state).Inc()
}
