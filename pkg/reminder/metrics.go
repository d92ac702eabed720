package reminder

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts reminder job outcomes. A nil *Metrics records nothing.
type Metrics struct {
	logs *prometheus.CounterVec
	runs *prometheus.CounterVec
}

// NewMetrics registers the reminder collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "substack",
			Subsystem: "reminders",
			Name:      "logs_total",
			Help:      "Reminder logs written, by reminder type and status.",
		}, []string{"type", "status"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "substack",
			Subsystem: "reminders",
			Name:      "runs_total",
			Help:      "Reminder job runs, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.logs, m.runs)
	return m
}

func (m *Metrics) logWritten(t, status string) {
	if m == nil {
		return
	}
	m.logs.WithLabelValues(t, status).Inc()
}

func (m *Metrics) runFinished(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runs.WithLabelValues(result).Inc()
}
