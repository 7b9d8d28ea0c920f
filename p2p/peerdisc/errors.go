// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package peerdisc resolves a peer's long-term public identity key into a
// currently-valid transport socket address, composing a local cache, a
// Kademlia-style DHT lookup and a boot-node fallback into one strategy. It
// also advertises the running node's own record and republishes it, with a
// monotonically increasing sequence, across restarts.
package peerdisc

import "github.com/pkg/errors"

// ErrStoreCorrupt reports a persisted value that doesn't match its expected
// encoding. It's fatal for the sequence counter, per-entry for addresses.
var ErrStoreCorrupt = errors.New("peerdisc: store corrupt")

// ErrConfigInvalid reports a configuration the service cannot start with:
// a missing base directory or a missing local identity. A boot record the
// underlying engine refuses also stops Start, but that error is the
// engine's own and is not wrapped with ErrConfigInvalid; key parsing
// happens before Start and does not report it either.
var ErrConfigInvalid = errors.New("peerdisc: invalid configuration")
