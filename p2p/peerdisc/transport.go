// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"context"
	"net"
	"sync"
	"time"
)

// Transport is the reliable request/reply network transport boot-node
// fallback depends on (spec: "the reliable request/reply network transport
// used for boot-node fallback" is an external collaborator). BootClient
// only knows how to frame and parse the envelope; Transport owns the
// actual round trip.
type Transport interface {
	Send(ctx context.Context, addr *net.UDPAddr, payload []byte) ([]byte, error)
}

// udpTransport is the default Transport: a single shared UDP socket with
// one request in flight at a time. Good enough for a boot client that
// only ever issues one query per resolve attempt; a higher-throughput
// deployment can supply its own Transport.
type udpTransport struct {
	mu   sync.Mutex
	conn *net.UDPConn
}

// NewUDPTransport wraps conn as a Transport.
func NewUDPTransport(conn *net.UDPConn) Transport {
	return &udpTransport{conn: conn}
}

func (t *udpTransport) Send(ctx context.Context, addr *net.UDPAddr, payload []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(BootTimeout)
	}
	if err := t.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	if _, err := t.conn.WriteToUDP(payload, addr); err != nil {
		return nil, err
	}

	buf := make([]byte, maxReplySize)
	n, _, err := t.conn.ReadFromUDP(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
