// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"context"
	"net"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// bootEnvelope is the wire contract for a boot-node query: a version tag,
// a validator-id field (0 for discovery lookups), and a payload equal to
// the raw identity bytes being resolved.
type bootEnvelope struct {
	Version     uint32
	ValidatorID uint64
	Message     []byte
}

// BootClient sends one request to a chosen boot peer and decodes the
// reply as a PeerAddress.
type BootClient struct {
	transport Transport
	version   uint32
}

// NewBootClient builds a client that frames requests over transport.
func NewBootClient(transport Transport, version uint32) *BootClient {
	return &BootClient{transport: transport, version: version}
}

// Query asks boot to resolve identity. On success the resulting address
// is also written into store under identity. A timeout or transport error
// yields (PeerAddress{}, false), logged at warn; a malformed reply yields
// the same, logged at error.
func (c *BootClient) Query(ctx context.Context, store *AddressStore, boot PeerAddress, identity []byte) (PeerAddress, bool) {
	ctx, cancel := context.WithTimeout(ctx, BootTimeout)
	defer cancel()

	payload, err := rlp.EncodeToBytes(&bootEnvelope{
		Version:     c.version,
		ValidatorID: 0,
		Message:     identity,
	})
	if err != nil {
		logger.Error("boot query envelope encode failed", "err", err)
		return PeerAddress{}, false
	}

	addr := &net.UDPAddr{IP: boot.IP, Port: int(boot.Port)}
	reply, err := c.transport.Send(ctx, addr, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("boot query timed out", "boot", boot.String())
		} else {
			logger.Warn("boot query transport error", "boot", boot.String(), "err", err)
		}
		return PeerAddress{}, false
	}

	var result PeerAddress
	if err := result.UnmarshalBinary(reply); err != nil {
		logger.Error("boot query malformed reply", "boot", boot.String(), "err", err)
		return PeerAddress{}, false
	}

	if store != nil {
		if err := store.PutAddr(identity, result); err != nil {
			logger.Warn("boot query store write failed", "err", err)
		}
	}
	return result, true
}
