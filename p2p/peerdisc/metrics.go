// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import "github.com/dvnode/dvnode/metrics"

var metricConnectedNodes = metrics.LazyLoadCounter("dvt_vc_connected_nodes")

// recorder wraps the module's one metric: a first-sight counter of peers
// whose address has ever been written to the store.
type recorder struct {
	connectedNodes func() metrics.Counter
}

func newRecorder() *recorder {
	return &recorder{connectedNodes: metricConnectedNodes}
}

// ObserveFirstSight increments the connected-nodes counter. Callers check
// AddressStore.HasEntry before writing and call this only when the entry
// is new; the check-then-increment is intentionally not atomic with the
// write, so duplicate increments under concurrent first-sight events are
// tolerated rather than guarded with a lock.
func (r *recorder) ObserveFirstSight() {
	r.connectedNodes().Add(1)
}
