// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records timings in a dedicated Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	size     prometheus.Gauge
}

// NewMetrics creates and registers the benchmark collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "matbench",
			Name:      "multiply_duration_seconds",
			Help:      "Wall-clock time of one timed multiply call",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"strategy", "workers"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matbench",
			Name:      "multiply_failures_total",
			Help:      "Multiply calls that returned an error",
		}, []string{"strategy", "workers"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "matbench",
			Name:      "matrix_size",
			Help:      "Dimension N of the N×N input matrices",
		}),
	}
	m.registry.MustRegister(m.duration, m.failures, m.size)
	return m
}

// Registry returns the registry holding the benchmark collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one timed iteration of c.
func (m *Metrics) Observe(c Case, d time.Duration) {
	m.duration.WithLabelValues(c.Strategy, strconv.Itoa(c.Workers)).Observe(d.Seconds())
}

// Failure counts a failed call of c.
func (m *Metrics) Failure(c Case) {
	m.failures.WithLabelValues(c.Strategy, strconv.Itoa(c.Workers)).Inc()
}

// SetSize records the matrix dimension.
func (m *Metrics) SetSize(n int) {
	m.size.Set(float64(n))
}

// WriteTextfile writes the registry in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
