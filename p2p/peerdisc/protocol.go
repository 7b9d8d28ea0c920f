// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"net"
	"time"

	"github.com/ethereum/go-ethereum/p2p/enode"

	"github.com/dvnode/dvnode/co"
)

// EventKind classifies an inbound protocol event.
type EventKind int

const (
	// EventDiscovered covers both a freshly discovered record and one for
	// which a session was established: the engine's push-event model
	// (Discovered/SessionEstablished) distills to a single "we observed
	// this record" signal here, since both are handled identically
	// (record's IPv4/UDP written to the store under its public key).
	EventDiscovered EventKind = iota
	// EventSocketUpdated reports the local node's own discovery socket
	// changed address.
	EventSocketUpdated
)

// Event is a single inbound notification consumed by the service's event
// loop.
type Event struct {
	Kind EventKind
	Node *enode.Node
}

// engine is the underlying Discv5 protocol implementation, treated as an
// external collaborator. *discover.UDPv5 satisfies this.
type engine interface {
	Self() *enode.Node
	Lookup(enode.ID) []*enode.Node
	RandomNodes() enode.Iterator
	LocalNode() *enode.LocalNode
	Close()
}

// DiscoveryProtocol is a thin, supervisor-facing facade over engine. The
// engine itself exposes no push-event stream, so two goroutines synthesize
// one: one drains the engine's RandomNodes iterator into EventDiscovered,
// the other polls the local node's own record for an IP/port change and
// emits EventSocketUpdated.
type DiscoveryProtocol struct {
	eng    engine
	it     enode.Iterator
	events chan Event
	stop   chan struct{}
	goes   co.Goes
}

// NewDiscoveryProtocol wraps eng and starts its background translation
// goroutines.
func NewDiscoveryProtocol(eng engine) *DiscoveryProtocol {
	p := &DiscoveryProtocol{
		eng:    eng,
		it:     eng.RandomNodes(),
		events: make(chan Event, 64),
		stop:   make(chan struct{}),
	}
	p.goes.Go(p.watchNodes)
	p.goes.Go(p.watchSocket)
	return p
}

func (p *DiscoveryProtocol) watchNodes() {
	defer p.it.Close()
	for p.it.Next() {
		select {
		case p.events <- Event{Kind: EventDiscovered, Node: p.it.Node()}:
		case <-p.stop:
			return
		}
	}
}

func (p *DiscoveryProtocol) watchSocket() {
	ticker := time.NewTicker(socketPollInterval)
	defer ticker.Stop()

	var lastIP net.IP
	var lastPort int
	for {
		select {
		case <-ticker.C:
			n := p.eng.LocalNode().Node()
			ip := n.IP()
			if ip == nil || ip.To4() == nil {
				continue
			}
			port := n.UDP()
			if lastIP.Equal(ip) && port == lastPort {
				continue
			}
			lastIP, lastPort = ip, port
			select {
			case p.events <- Event{Kind: EventSocketUpdated, Node: n}:
			case <-p.stop:
				return
			}
		case <-p.stop:
			return
		}
	}
}

// FindNode runs the Kademlia-style find_node lookup for id.
func (p *DiscoveryProtocol) FindNode(id enode.ID) []*enode.Node {
	return p.eng.Lookup(id)
}

// Events returns the synthesized inbound event stream.
func (p *DiscoveryProtocol) Events() <-chan Event { return p.events }

// Self returns the local node's own record.
func (p *DiscoveryProtocol) Self() *enode.Node { return p.eng.Self() }

// Close stops the translation goroutines and the underlying engine.
func (p *DiscoveryProtocol) Close() {
	close(p.stop)
	p.it.Close()
	p.eng.Close()
	p.goes.Wait()
}
