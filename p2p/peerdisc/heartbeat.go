// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"sync/atomic"
	"time"
)

// heartbeatGate is a per-peer permit that authorizes a network-path
// resolution at most once per interval. Its missed-tick policy is
// "delay": a long idle period reschedules from now rather than bursting
// permits to make up for lost time. Implemented as a CAS on the last-fire
// timestamp rather than a time.Ticker, since a ticker's own missed-tick
// behavior doesn't compose cleanly with an on-demand (not periodically
// driven) caller.
type heartbeatGate struct {
	interval time.Duration
	last     atomic.Int64 // UnixNano of the last granted permit; 0 before the first.
}

func newHeartbeatGate(interval time.Duration) *heartbeatGate {
	return &heartbeatGate{interval: interval}
}

// ready reports whether a permit is available and, if so, atomically
// claims it. The check-and-claim is lock-free: concurrent callers race on
// the same CAS, and at most one observes a granted permit per interval.
func (g *heartbeatGate) ready() bool {
	for {
		last := g.last.Load()
		now := time.Now().UnixNano()
		if now-last < int64(g.interval) {
			return false
		}
		if g.last.CompareAndSwap(last, now) {
			return true
		}
	}
}
