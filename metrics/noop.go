// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

// noopMeters implements every metric interface as a discard, so callers
// never have to nil-check a metric obtained before InitializePrometheusMetrics.
type noopMeters struct{}

func (noopMeters) Add(int64)                               {}
func (noopMeters) Set(int64)                                {}
func (noopMeters) Observe(int64)                            {}
func (noopMeters) AddWithLabel(int64, map[string]string)    {}
func (noopMeters) SetWithLabel(int64, map[string]string)    {}
func (noopMeters) ObserveWithLabels(int64, map[string]string) {}

var noop = &noopMeters{}
