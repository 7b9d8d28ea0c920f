// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a thin, lazily-initialized facade over
// prometheus/client_golang. Call sites declare a metric once at package
// scope with one of the LazyLoad* helpers and invoke the returned func on
// every observation; nothing is registered with Prometheus until
// InitializePrometheusMetrics is called (normally once, at process
// startup, behind a config flag), so instrumented packages can be
// imported by binaries that never expose /metrics without cost.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dvnode"
const subsystem = "metrics"

// Counter is a monotonically increasing value.
type Counter interface{ Add(n int64) }

// Gauge is a value that can move up or down.
type Gauge interface {
	Add(n int64)
	Set(n int64)
}

// Histogram observes a distribution of values.
type Histogram interface{ Observe(n int64) }

// CounterVec is a Counter partitioned by a fixed set of label names.
type CounterVec interface {
	AddWithLabel(n int64, labels map[string]string)
}

// GaugeVec is a Gauge partitioned by a fixed set of label names.
type GaugeVec interface {
	AddWithLabel(n int64, labels map[string]string)
	SetWithLabel(n int64, labels map[string]string)
}

// HistogramVec is a Histogram partitioned by a fixed set of label names.
type HistogramVec interface {
	ObserveWithLabels(n int64, labels map[string]string)
}

type registry struct {
	mu            sync.Mutex
	usePrometheus bool
	counters      map[string]Counter
	counterVecs   map[string]CounterVec
	gauges        map[string]Gauge
	gaugeVecs     map[string]GaugeVec
	histograms    map[string]Histogram
	histogramVecs map[string]HistogramVec
}

func defaultNoopMetrics() *registry {
	return &registry{
		counters:      make(map[string]Counter),
		counterVecs:   make(map[string]CounterVec),
		gauges:        make(map[string]Gauge),
		gaugeVecs:     make(map[string]GaugeVec),
		histograms:    make(map[string]Histogram),
		histogramVecs: make(map[string]HistogramVec),
	}
}

var metrics = defaultNoopMetrics()

// InitializePrometheusMetrics switches every metric looked up from this
// point on (including ones behind a LazyLoad* func) to real Prometheus
// collectors. No-op metrics cached before the switch are dropped, so a
// later lookup by the same name returns a Prometheus collector.
func InitializePrometheusMetrics() {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if metrics.usePrometheus {
		return
	}
	fresh := defaultNoopMetrics()
	metrics.counters = fresh.counters
	metrics.counterVecs = fresh.counterVecs
	metrics.gauges = fresh.gauges
	metrics.gaugeVecs = fresh.gaugeVecs
	metrics.histograms = fresh.histograms
	metrics.histogramVecs = fresh.histogramVecs
	metrics.usePrometheus = true
}

// HTTPHandler serves the registered collectors, or 404 if
// InitializePrometheusMetrics was never called.
func HTTPHandler() http.Handler {
	metrics.mu.Lock()
	enabled := metrics.usePrometheus
	metrics.mu.Unlock()
	if !enabled {
		return http.NotFoundHandler()
	}
	return promhttp.Handler()
}

// Counter returns the named counter, creating it on first use.
func Counter(name string) Counter {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if c, ok := metrics.counters[name]; ok {
		return c
	}
	var c Counter
	if metrics.usePrometheus {
		c = &promCounter{promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name,
		})}
	} else {
		c = noop
	}
	metrics.counters[name] = c
	return c
}

// Gauge returns the named gauge, creating it on first use.
func Gauge(name string) Gauge {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if g, ok := metrics.gauges[name]; ok {
		return g
	}
	var g Gauge
	if metrics.usePrometheus {
		g = &promGauge{promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name,
		})}
	} else {
		g = noop
	}
	metrics.gauges[name] = g
	return g
}

// Histogram returns the named histogram, creating it (with buckets, or
// prometheus.DefBuckets if nil) on first use.
func Histogram(name string, buckets []int64) Histogram {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if h, ok := metrics.histograms[name]; ok {
		return h
	}
	var h Histogram
	if metrics.usePrometheus {
		h = &promHistogram{promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name,
			Buckets: toFloatBuckets(buckets),
		})}
	} else {
		h = noop
	}
	metrics.histograms[name] = h
	return h
}

// CounterVec returns the named label-partitioned counter, creating it on
// first use.
func CounterVec(name string, labels []string) CounterVec {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if v, ok := metrics.counterVecs[name]; ok {
		return v
	}
	var v CounterVec
	if metrics.usePrometheus {
		v = &promCounterVec{promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name,
		}, labels)}
	} else {
		v = noop
	}
	metrics.counterVecs[name] = v
	return v
}

// GaugeVec returns the named label-partitioned gauge, creating it on first
// use.
func GaugeVec(name string, labels []string) GaugeVec {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if v, ok := metrics.gaugeVecs[name]; ok {
		return v
	}
	var v GaugeVec
	if metrics.usePrometheus {
		v = &promGaugeVec{promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name,
		}, labels)}
	} else {
		v = noop
	}
	metrics.gaugeVecs[name] = v
	return v
}

// HistogramVec returns the named label-partitioned histogram, creating it
// on first use.
func HistogramVec(name string, labels []string, buckets []int64) HistogramVec {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if v, ok := metrics.histogramVecs[name]; ok {
		return v
	}
	var v HistogramVec
	if metrics.usePrometheus {
		v = &promHistogramVec{promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name,
			Buckets: toFloatBuckets(buckets),
		}, labels)}
	} else {
		v = noop
	}
	metrics.histogramVecs[name] = v
	return v
}

// LazyLoadCounter defers Counter(name) until the returned func is first
// called, so the metric picks up whatever mode InitializePrometheusMetrics
// is in at that point rather than at package-init time.
func LazyLoadCounter(name string) func() Counter {
	return func() Counter { return Counter(name) }
}

func LazyLoadGauge(name string) func() Gauge {
	return func() Gauge { return Gauge(name) }
}

func LazyLoadHistogram(name string, buckets []int64) func() Histogram {
	return func() Histogram { return Histogram(name, buckets) }
}

func LazyLoadCounterVec(name string, labels []string) func() CounterVec {
	return func() CounterVec { return CounterVec(name, labels) }
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVec {
	return func() GaugeVec { return GaugeVec(name, labels) }
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVec {
	return func() HistogramVec { return HistogramVec(name, labels, buckets) }
}

func toFloatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return prometheus.DefBuckets
	}
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = float64(b)
	}
	return out
}
