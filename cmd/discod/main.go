// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// discod resolves validator identity keys to transport socket addresses
// over a Kademlia DHT, with a boot-node fallback.
package main

import (
	"os"

	"github.com/dvnode/dvnode/cmd/discod/runtime"
)

func main() {
	runtime.Start(os.Args)
}
