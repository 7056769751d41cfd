// Package metrics exposes timer activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomatoclock/tomato/timer"
)

const namespace = "tomato"

var states = []timer.State{timer.Idle, timer.Running, timer.Paused, timer.Completed}

// Metrics holds the collectors for one daemon.
type Metrics struct {
	events    *prometheus.CounterVec
	commands  *prometheus.CounterVec
	state     *prometheus.GaugeVec
	remaining prometheus.Gauge
	elapsed   prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Timer events by type",
			},
			[]string{"event", "phase"},
		),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands received by kind and result",
			},
			[]string{"command", "result"},
		),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "state",
				Help:      "1 for the current timer state, 0 otherwise",
			},
			[]string{"state"},
		),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_remaining_seconds",
			Help:      "Time left in the current phase",
		}),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_elapsed_seconds",
			Help:      "Time spent in the current phase",
		}),
	}

	registry.MustRegister(m.events, m.commands, m.state, m.remaining, m.elapsed)
	m.ObserveSnapshot(timer.Snapshot{State: timer.Idle})

	return m
}

// HandleEvent counts timer events.
func (m *Metrics) HandleEvent(ev timer.Event) {
	phase := ""
	if ev.Phase != nil {
		phase = ev.Phase.Name
	}

	m.events.WithLabelValues(string(ev.Type), phase).Inc()
}

// ObserveCommand counts a processed command.
func (m *Metrics) ObserveCommand(kind timer.CommandKind, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.commands.WithLabelValues(string(kind), result).Inc()
}

// ObserveSnapshot records the current state and phase progress.
func (m *Metrics) ObserveSnapshot(s timer.Snapshot) {
	for _, st := range states {
		v := 0.0
		if st == s.State {
			v = 1
		}

		m.state.WithLabelValues(string(st)).Set(v)
	}

	m.remaining.Set(s.Remaining().Seconds())
	m.elapsed.Set(s.ElapsedTime.Seconds())
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
