// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package peerdisc

import (
	"bytes"
	"context"
	"math/rand/v2"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dvnode/dvnode/co"
)

// protocolIface is the subset of DiscoveryProtocol the service depends on,
// narrowed so tests can supply a fake without a real UDP socket.
type protocolIface interface {
	FindNode(enode.ID) []*enode.Node
	Events() <-chan Event
	Self() *enode.Node
	Close()
}

// bootQuerier is the subset of BootClient the service depends on.
type bootQuerier interface {
	Query(ctx context.Context, store *AddressStore, boot PeerAddress, identity []byte) (PeerAddress, bool)
}

type queryCmd struct {
	id    enode.ID
	reply chan struct{}
}

// Service is the supervisor: it owns the protocol, the store, the boot
// list and the local key material, runs exactly one background event
// loop, and exposes Resolve/ResolveMany/Discover/UpdateAddr to callers.
type Service struct {
	store    *AddressStore
	protocol protocolIface
	boot     bootQuerier
	bootAddr []PeerAddress
	identity []byte
	metrics  *recorder

	heartbeatsMu sync.RWMutex
	heartbeats   map[string]*heartbeatGate

	queries    chan queryCmd
	goes       co.Goes
	stop       chan struct{}
	stopOnce   sync.Once
	closeFuncs []func()
}

// newService wires a Service from already-constructed collaborators. It's
// unexported: real callers go through Start, which builds the protocol and
// store from Config; tests construct a Service directly with fakes.
func newService(identity []byte, localAddr PeerAddress, bootAddr []PeerAddress, channelCap int, store *AddressStore, protocol protocolIface, boot bootQuerier) (*Service, error) {
	if len(identity) == 0 {
		return nil, errors.Wrap(ErrConfigInvalid, "missing local identity")
	}
	if channelCap <= 0 {
		channelCap = DefaultChannelCapacity
	}

	svc := &Service{
		store:      store,
		protocol:   protocol,
		boot:       boot,
		bootAddr:   bootAddr,
		identity:   identity,
		metrics:    newRecorder(),
		heartbeats: make(map[string]*heartbeatGate),
		queries:    make(chan queryCmd, channelCap),
		stop:       make(chan struct{}),
	}

	if err := svc.store.PutAddr(identity, localAddr); err != nil {
		return nil, errors.Wrap(err, "persist local address")
	}

	svc.goes.Go(svc.loop)
	return svc, nil
}

// Close stops the event loop and every registered close func (protocol,
// transport socket, store). Safe to call more than once.
func (s *Service) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
		s.goes.Wait()
		for _, fn := range s.closeFuncs {
			fn()
		}
	})
}

func (s *Service) loop() {
	for {
		select {
		case cmd, ok := <-s.queries:
			if !ok {
				return
			}
			s.handleQuery(cmd)
		case ev, ok := <-s.protocol.Events():
			if !ok {
				return
			}
			s.handleEvent(ev)
		case <-s.stop:
			return
		}
	}
}

func (s *Service) handleQuery(cmd queryCmd) {
	for _, n := range s.protocol.FindNode(cmd.id) {
		s.recordNode(n)
	}
	close(cmd.reply)
}

func (s *Service) handleEvent(ev Event) {
	switch ev.Kind {
	case EventDiscovered:
		s.recordNode(ev.Node)
	case EventSocketUpdated:
		ip := ev.Node.IP()
		if ip == nil || ip.To4() == nil {
			return // IPv6 socket updates are observed but not persisted
		}
		s.writeAddr(s.identity, PeerAddress{IP: ip.To4(), Port: udpPort(ev.Node)})
	}
}

func (s *Service) recordNode(n *enode.Node) {
	ip := n.IP()
	if ip == nil || ip.To4() == nil {
		return
	}
	if n.UDP() == 0 {
		return
	}
	identity := crypto.CompressPubkey(n.Pubkey())
	s.writeAddr(identity, PeerAddress{IP: ip.To4(), Port: udpPort(n)})
}

func udpPort(n *enode.Node) uint16 {
	return uint16(n.UDP() - DiscoveryPortOffset)
}

func (s *Service) writeAddr(identity []byte, addr PeerAddress) {
	isNew := !s.store.HasEntry(identity)
	if err := s.store.PutAddr(identity, addr); err != nil {
		logger.Warn("write peer address failed", "err", err)
		return
	}
	if isNew {
		s.metrics.ObserveFirstSight()
	}
}

// Discover enqueues a find_node command on the event loop and waits for it
// to complete. A send failure (loop stopped) is logged; the call still
// returns.
func (s *Service) Discover(ctx context.Context, id enode.ID) {
	reply := make(chan struct{})
	select {
	case s.queries <- queryCmd{id: id, reply: reply}:
	case <-s.stop:
		logger.Warn("discover dropped: service stopped")
		return
	case <-ctx.Done():
		return
	}
	select {
	case <-reply:
	case <-s.stop:
	case <-ctx.Done():
	}
}

// Resolve implements the three-path strategy: self-identity short-circuits
// to the store; otherwise a heartbeat gate decides whether this call also
// runs the network path (a parallel find_node + boot-node fallback) before
// returning whatever the store now holds.
func (s *Service) Resolve(ctx context.Context, identity []byte) (PeerAddress, bool) {
	if bytes.Equal(identity, s.identity) {
		return s.store.GetAddr(identity)
	}

	gate := s.gateFor(identity)
	if gate.ready() {
		id := enode.ID(crypto.Keccak256Hash(identity))
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			s.Discover(gctx, id)
			return nil
		})
		g.Go(func() error {
			s.bootFallback(gctx, identity)
			return nil
		})
		_ = g.Wait()
	}
	return s.store.GetAddr(identity)
}

// ResolveMany resolves each identity in order. Sequential rather than
// concurrent, to keep heartbeat bookkeeping simple and bound inflight DHT
// queries; callers that want parallelism can fan out Resolve themselves.
func (s *Service) ResolveMany(ctx context.Context, identities [][]byte) []Resolved {
	out := make([]Resolved, len(identities))
	for i, id := range identities {
		addr, ok := s.Resolve(ctx, id)
		out[i] = Resolved{Addr: addr, OK: ok}
	}
	return out
}

// UpdateAddr forces a fresh lookup for identity: a find_node, then a
// boot-node fallback at a random boot index, then the store's resulting
// value.
func (s *Service) UpdateAddr(ctx context.Context, identity []byte) (PeerAddress, bool) {
	id := enode.ID(crypto.Keccak256Hash(identity))
	s.Discover(ctx, id)
	s.bootFallback(ctx, identity)
	return s.store.GetAddr(identity)
}

func (s *Service) bootFallback(ctx context.Context, identity []byte) {
	if len(s.bootAddr) == 0 {
		logger.Warn("boot fallback skipped: no boot addresses configured")
		return
	}
	boot := s.bootAddr[rand.IntN(len(s.bootAddr))]
	isNew := !s.store.HasEntry(identity)
	if _, ok := s.boot.Query(ctx, s.store, boot, identity); ok && isNew {
		s.metrics.ObserveFirstSight()
	}
}

func (s *Service) gateFor(identity []byte) *heartbeatGate {
	key := string(identity)

	s.heartbeatsMu.RLock()
	g, ok := s.heartbeats[key]
	s.heartbeatsMu.RUnlock()
	if ok {
		return g
	}

	s.heartbeatsMu.Lock()
	defer s.heartbeatsMu.Unlock()
	if g, ok := s.heartbeats[key]; ok {
		return g
	}
	g = newHeartbeatGate(HeartbeatInterval)
	s.heartbeats[key] = g
	return g
}
