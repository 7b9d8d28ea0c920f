// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

// BucketResolveMillis buckets end-to-end address resolution latency, in
// milliseconds, spanning a DHT cache hit through a boot-node fallback
// timeout.
var BucketResolveMillis = []int64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2000, 3000, 5000}
