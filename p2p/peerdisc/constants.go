// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import "time"

const (
	// DiscoveryPortOffset is subtracted from a peer's discv5 UDP port to
	// get its corresponding service port: the value this package persists
	// and hands back to callers. Anything dialed as a discovery UDP
	// destination — a boot record, a found node's socket — uses the raw
	// port instead; the offset is never applied on that path.
	DiscoveryPortOffset = 1

	// HeartbeatInterval is the minimum spacing between two network-path
	// resolutions for the same peer.
	HeartbeatInterval = 60 * time.Second

	// BootTimeout bounds a single boot-node request/reply round trip.
	BootTimeout = 3000 * time.Millisecond

	// DefaultChannelCapacity bounds the service's internal query channel.
	DefaultChannelCapacity = 16

	// DefaultDiscoveryIPStore names the store directory under the
	// service's base directory.
	DefaultDiscoveryIPStore = "discovery_ip_store"

	// socketPollInterval governs how often the protocol facade checks the
	// local node's own record for an IP/port change, since the underlying
	// engine has no native push notification for that.
	socketPollInterval = 5 * time.Second

	// maxReplySize bounds a boot query reply datagram.
	maxReplySize = 512

	// protocolVersion tags the boot query envelope with the running
	// binary's wire version.
	protocolVersion = 1
)
