// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "github.com/prometheus/client_golang/prometheus"

type promCounter struct{ c prometheus.Counter }

func (m *promCounter) Add(n int64) { m.c.Add(float64(n)) }

type promGauge struct{ g prometheus.Gauge }

func (m *promGauge) Add(n int64) { m.g.Add(float64(n)) }
func (m *promGauge) Set(n int64) { m.g.Set(float64(n)) }

type promHistogram struct{ h prometheus.Histogram }

func (m *promHistogram) Observe(n int64) { m.h.Observe(float64(n)) }

type promCounterVec struct{ v *prometheus.CounterVec }

func (m *promCounterVec) AddWithLabel(n int64, labels map[string]string) {
	m.v.With(labels).Add(float64(n))
}

type promGaugeVec struct{ v *prometheus.GaugeVec }

func (m *promGaugeVec) AddWithLabel(n int64, labels map[string]string) {
	m.v.With(labels).Add(float64(n))
}
func (m *promGaugeVec) SetWithLabel(n int64, labels map[string]string) {
	m.v.With(labels).Set(float64(n))
}

type promHistogramVec struct{ v *prometheus.HistogramVec }

func (m *promHistogramVec) ObserveWithLabels(n int64, labels map[string]string) {
	m.v.With(labels).Observe(float64(n))
}
