// Package metrics exposes Prometheus collectors for boot sequence runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bootcheck"

// Step results.
const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)

// Recorder owns a registry with the boot sequence collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	// Registry holds the collectors below.
	Registry *prometheus.Registry

	runs        *prometheus.CounterVec
	steps       *prometheus.CounterVec
	temperature *prometheus.GaugeVec
}

// New returns a Recorder with its collectors registered on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of boot sequence runs by outcome.",
			},
			[]string{"outcome"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Total number of executed boot steps by result.",
			},
			[]string{"step", "result"},
		),
		temperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "temperature_celsius",
				Help:      "Last temperature reading taken for each boot check.",
			},
			[]string{"context"},
		),
	}
	r.Registry.MustRegister(r.runs, r.steps, r.temperature)
	return r
}

// ObserveRun counts a finished run. outcome is "completed" or the abort reason.
func (r *Recorder) ObserveRun(outcome string) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome).Inc()
}

// ObserveStep counts an executed step.
func (r *Recorder) ObserveStep(step string, err error) {
	if r == nil {
		return
	}
	result := ResultPassed
	if err != nil {
		result = ResultFailed
	}
	r.steps.WithLabelValues(step, result).Inc()
}

// ObserveTemperature records a temperature reading taken in the given context, e.g. "power-supply".
func (r *Recorder) ObserveTemperature(context string, celsius int) {
	if r == nil {
		return
	}
	r.temperature.WithLabelValues(context).Set(float64(celsius))
}

// WriteToTextfile writes the current metrics in the Prometheus text format to the given file.
func (r *Recorder) WriteToTextfile(filename string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(filename, r.Registry)
}
